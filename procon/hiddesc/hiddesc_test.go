package hiddesc

import "testing"

func TestClassDescriptorLength(t *testing.T) {
	cd := ClassDescriptor()

	if len(cd) != 9 {
		t.Fatalf("len(ClassDescriptor()) = %d, want 9", len(cd))
	}

	n := len(Report)
	if cd[7] != byte(n) || cd[8] != byte(n>>8) {
		t.Fatalf("wDescriptorLength = %x %x, want %x %x", cd[7], cd[8], byte(n), byte(n>>8))
	}
}

func TestReportStartsWithJoystickUsage(t *testing.T) {
	want := []byte{0x05, 0x01, 0x15, 0x00, 0x09, 0x04, 0xA1, 0x01}
	for i, wb := range want {
		if Report[i] != wb {
			t.Fatalf("Report[%d] = %#x, want %#x", i, Report[i], wb)
		}
	}
}

func TestReportEndsWithCollectionEnd(t *testing.T) {
	if Report[len(Report)-1] != 0xC0 {
		t.Fatalf("last byte = %#x, want 0xC0", Report[len(Report)-1])
	}
}
