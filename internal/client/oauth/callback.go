package oauth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	paramCode  = "code"
	paramUser  = "user"
	paramError = "error"

	signInPath = "/api/auth/github"
)

var (
	ErrInvalidURL         = errors.New("invalid callback url")
	ErrIncompleteCallback = errors.New("incomplete provider result")
)

// Result is what the provider left on the callback URL.
type Result struct {
	Token   string
	Profile Profile
	Error   string
}

// Failed reports whether the provider returned an error code.
func (r Result) Failed() bool { return r.Error != "" }

// SignInURL is where the host sends the user to start a provider sign-in.
// The callback loses its query and fragment so stale results are never
// bounced back.
func SignInURL(apiBase, callback string) (string, error) {
	cb, err := url.Parse(callback)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	cb.RawQuery = ""
	cb.Fragment = ""

	q := url.Values{"redirect_uri": {cb.String()}}
	return strings.TrimRight(apiBase, "/") + signInPath + "?" + q.Encode(), nil
}

// ReadCallback extracts the provider result from rawURL and returns the URL
// with code, user and error removed. found is false when none of them is
// present; the URL is then returned unchanged.
//
// A result with only one of code/user is still stripped and reported as
// ErrIncompleteCallback, so it cannot be replayed.
func ReadCallback(rawURL string) (res Result, stripped string, found bool, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Result{}, rawURL, false, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	q := u.Query()
	if !q.Has(paramCode) && !q.Has(paramUser) && !q.Has(paramError) {
		return Result{}, rawURL, false, nil
	}

	code, user, perr := q.Get(paramCode), q.Get(paramUser), q.Get(paramError)
	q.Del(paramCode)
	q.Del(paramUser)
	q.Del(paramError)
	u.RawQuery = q.Encode()
	stripped = u.String()

	if perr != "" {
		return Result{Error: perr}, stripped, true, nil
	}
	if code == "" || user == "" {
		return Result{}, stripped, true, ErrIncompleteCallback
	}

	profile, err := ParseProfile([]byte(user))
	if err != nil {
		// Some relays encode the profile twice.
		unescaped, uerr := url.QueryUnescape(user)
		if uerr != nil {
			return Result{}, stripped, true, err
		}
		if profile, err = ParseProfile([]byte(unescaped)); err != nil {
			return Result{}, stripped, true, err
		}
	}

	return Result{Token: code, Profile: profile}, stripped, true, nil
}
