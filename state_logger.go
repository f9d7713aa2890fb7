package authpages

// LogAuthState logs every sign in and sign out seen on source. It never
// redirects; pages decide that for themselves.
func LogAuthState(source AuthStateSource, logger Logger) (stop func()) {
	if logger == nil {
		logger = defLogger{}
	}
	return source.SubscribeAuthState(func(state AuthState) {
		if state.IsPresent() {
			logger.Info("user is signed in", "email", state.Principal.Email, "uid", state.Principal.UID)
			return
		}
		logger.Info("no user is signed in")
	})
}
