package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()

	if c.Serial.Device != "/dev/ttyUSB0" || c.Serial.Baud != 115200 {
		t.Fatalf("unexpected defaults: %+v", c.Serial)
	}
}

func TestLoadPartialOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("serial:\n  device: /dev/ttyACM0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.Serial.Device != "/dev/ttyACM0" {
		t.Fatalf("Serial.Device = %q, want /dev/ttyACM0", c.Serial.Device)
	}
	if c.Serial.Baud != 115200 {
		t.Fatalf("Serial.Baud = %d, want default 115200", c.Serial.Baud)
	}
	if c.DS4.VendorID != 0x054c {
		t.Fatalf("DS4.VendorID = %#x, want default 0x054c", c.DS4.VendorID)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
