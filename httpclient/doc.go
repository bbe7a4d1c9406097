// Package httpclient is the outbound HTTP client used for third-party APIs
// such as the SMS gateway. It resolves paths against a base URL, encodes
// JSON and form bodies, applies bearer or basic auth, classifies non-2xx
// responses into typed errors and optionally retries through resilience.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.twilio.com",
//	    Auth:    httpclient.BasicAuth(sid, token),
//	    Retry:   httpclient.DefaultRetryConfig(),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/2010-04-01/Accounts/" + sid + "/Messages.json",
//	    Body:   url.Values{"To": {to}, "From": {from}, "Body": {body}},
//	})
package httpclient
