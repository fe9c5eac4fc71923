package lint

import (
	"testing"

	"github.com/quillcheck/quill/fingerprint"
)

func TestResultValidity(t *testing.T) {
	linesFp := fingerprint.Texts([]string{"a", "b"})
	configFp := fingerprint.Bytes([]byte("config"))
	checksFp := fingerprint.Bytes([]byte("checks"))

	result := &Result{
		LinesFingerprint:  linesFp,
		ConfigFingerprint: configFp,
		ChecksFingerprint: checksFp,
	}

	if !result.IsFullyValid(linesFp, configFp, checksFp) {
		t.Fatal("matching fingerprints must be fully valid")
	}
	otherLines := fingerprint.Texts([]string{"a", "b", "c"})
	if result.IsFullyValid(otherLines, configFp, checksFp) {
		t.Fatal("changed lines must break full validity")
	}
	if !result.IsIncrementallyValid(configFp, checksFp) {
		t.Fatal("changed lines alone must keep incremental validity")
	}
	otherConfig := fingerprint.Bytes([]byte("other config"))
	if result.IsIncrementallyValid(otherConfig, checksFp) {
		t.Fatal("changed config must break incremental validity")
	}
	if result.IsIncrementallyValid(configFp, fingerprint.Bytes([]byte("other checks"))) {
		t.Fatal("changed checks must break incremental validity")
	}
}

func TestZeroFingerprintsNeverValidate(t *testing.T) {
	// A Result deserialized from a corrupt cache row has empty
	// fingerprints; it must never validate against anything.
	var empty Result
	if empty.IsIncrementallyValid("", "") {
		t.Fatal("absent fingerprints must not validate")
	}
}
