// Package authpages keeps a set of pages in sync with an external identity
// provider. It does not authenticate anyone itself: credentials, tokens and
// sessions belong to the provider behind IdentityClient.
//
// Auth state:
//   - AuthState is Unknown until the provider's first notification, then
//     Present(Principal) or Absent. ObserveOnce turns the continuous stream
//     into a single blocking call that always releases its subscription.
//
// Guards:
//   - Guard.RequireAuth latches on the first notification and either runs the
//     page callback or navigates to the login page, carrying the current path
//     in a redirect parameter unless the viewer is already on login or signup.
//   - Guard.RedirectIfAuthenticated sends signed-in viewers away from the
//     login and signup pages, honoring a pending redirect parameter.
//
// Pages:
//   - LoginPage, SignupPage, HomePage and LandingPage wire a Surface (element
//     lookup, events, navigation) to the IdentityClient. Provider failures are
//     translated through ErrorMessage and never escape the page.
package authpages
