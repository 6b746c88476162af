// Package npz reads NumPy .npz archives far enough to answer metadata
// questions: which fields exist, what shape an array has, and the value of
// single-element fields.
//
// An .npz file is a zip container whose members are .npy files. Field names
// are the member names with the ".npy" suffix removed, matching what
// numpy.load exposes. Members may be stored or deflated.
//
// # Usage
//
//	opener := npz.NewOpener()
//	a, err := opener.Open("take1.npz")
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	fps, err := a.Scalar("mocap_framerate")
//	shape, err := a.Shape("poses")
//
// Array payloads other than single-element fields are never read; Shape only
// parses the NPY header.
package npz
