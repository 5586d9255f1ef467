// Package auth is the enrollment/authentication façade over the sensor
// workflows: the only surface external collaborators (storage, API
// layers) consume.
//
// A Service dials a fresh sensor connection per operation and closes it
// on every exit path. Enroll returns the captured template for the caller
// to persist; Authenticate takes the stored template back and reports the
// sensor's tolerant on-device match with its confidence score.
//
//	svc := auth.New(auth.SerialDialer("/dev/ttyUSB0"))
//
//	tpl, err := svc.Enroll(ctx, "alice")
//	// persist tpl ...
//
//	outcome, err := svc.Authenticate(ctx, "alice", tpl)
//	if outcome.Matched && outcome.Confidence >= threshold {
//	    // let them in
//	}
package auth
