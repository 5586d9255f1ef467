// Package template handles fingerprint template blobs off the sensor.
//
// A template is the sensor's fixed-length feature representation of a
// fingerprint (512 bytes on R307/AS608 modules). This package keeps the
// blob opaque: it sizes templates for transfer, persists them as raw
// .bin files, and produces SHA-256 digests for storage integrity checks.
//
// # Usage
//
//	tpl := template.Normalize(rawBytes) // exactly template.Size bytes
//	err := tpl.Save("dataset/alice/fingerprint.bin")
//
//	stored, err := template.Load("dataset/alice/fingerprint.bin")
//	fmt.Println(stored.Digest())
package template
