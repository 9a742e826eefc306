package debug

import "testing"

func TestBoolEnv(t *testing.T) {
	t.Setenv("DDL_TEST_FLAG", "true")
	if !boolEnv("DDL_TEST_FLAG") {
		t.Error("expected true")
	}
	t.Setenv("DDL_TEST_FLAG", "nope")
	if boolEnv("DDL_TEST_FLAG") {
		t.Error("unparseable value should be false")
	}
	if boolEnv("DDL_TEST_FLAG_UNSET") {
		t.Error("unset should be false")
	}
}
