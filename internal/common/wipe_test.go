package common

import "testing"

func TestWipeByteArray(t *testing.T) {
	b := []byte("secret1")
	WipeByteArray(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %d", i, v)
		}
	}
}

func TestWipeByteArray_Nil(t *testing.T) {
	// must not panic
	WipeByteArray(nil)
}
