// Package manifest builds, loads and validates motion manifests. A manifest
// lists every usable motion clip found under a dataset root, in index order.
//
// # Manifest Format
//
// Manifests are written in YAML (or JSON when the output ends in .json):
//
//	motions:
//	  - file: /data/amass/CMU/01/01_01_poses.motion
//	    fps: 120.0
//	    weight: 1.0
//	    idx: 0
//	    sub_motions:
//	      - timings:
//	          start: 0.0
//	          end: 2.5
//
// # Usage
//
// Build a manifest from a directory:
//
//	b := manifest.NewBuilder(manifest.BuilderOptions{
//	    Scanner:   scanner.New(scanner.DefaultOptions()),
//	    Extractor: extractor,
//	})
//	result, err := b.Build(ctx, "/data/amass")
//
// Load an existing one:
//
//	m, err := manifest.NewLoader().Load("motions.yaml")
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrInvalidFormat: file is not valid YAML/JSON
//   - ErrFileNotFound: manifest file does not exist
//   - ErrUnsupportedExt: unsupported file extension
//   - ErrEmptyFile, ErrInvalidFPS, ErrIndexGap, ErrInvalidTiming: entry validation
//   - ErrIdentifierCollision: two archives normalize to the same identifier
package manifest
