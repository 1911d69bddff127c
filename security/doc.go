// Package security provides the small security helpers a Discord login
// integration needs around the core flow:
//
//   - GenerateState / ValidateState: the OAuth "state" parameter that binds a
//     callback to the browser session which started the flow (CSRF protection)
//   - Fingerprint: a short, non-reversible identifier for secrets so logs can
//     correlate requests without containing tokens
//   - IsTokenExpired and friends: expiry checks with a clock-skew grace period
//
// # Example Usage
//
//	state := security.GenerateState()
//	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: state, HttpOnly: true})
//	http.Redirect(w, r, endpoint.AuthorizationURLWithState(state), http.StatusFound)
//
//	// in the callback handler
//	cookie, err := r.Cookie("oauth_state")
//	if err != nil || !security.ValidateState(cookie.Value, r.URL.Query().Get("state")) {
//	    http.Error(w, "invalid state", http.StatusBadRequest)
//	    return
//	}
package security
