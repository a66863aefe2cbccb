// Package httputil provides HTTP utilities for the remote genealogy clients.
//
// # Throttling
//
// [Throttle] enforces a fixed minimum delay between consecutive calls to a
// remote API. Public knowledge-graph endpoints expect polite clients; a
// fixed delay keeps a long family climb well under their limits without
// any rate-limit negotiation.
//
//	t := httputil.NewThrottle(100 * time.Millisecond)
//	for _, id := range ids {
//	    if err := t.Wait(ctx); err != nil {
//	        return err // cancelled
//	    }
//	    fetch(id)
//	}
//
// Failed calls are not retried; callers treat a failure as "no data" and
// move on.
package httputil
