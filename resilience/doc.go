// Package resilience retries failed calls to the outside world (database
// connections, the SMS gateway) with exponential backoff and jitter.
//
//	receipt, err := resilience.Retry(ctx, cfg, func() (*Receipt, error) {
//	    return send(ctx)
//	})
//
// Wrap an error with Permanent to stop retrying immediately.
package resilience
