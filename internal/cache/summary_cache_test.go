package cache

import (
	"testing"

	"surveytoolkit/internal/model"
)

func TestKeys(t *testing.T) {
	if got := summaryKey("s1", "pl"); got != "survey:s1:summary:pl" {
		t.Errorf("unexpected summary key %q", got)
	}
	if got := keysKey("s1"); got != "survey:s1:keys" {
		t.Errorf("unexpected key set %q", got)
	}

	seen := make(map[string]bool)
	for _, opts := range []model.MetadataOptions{{}, {ToDummies: true}, {Optimize: true}, {ToDummies: true, Optimize: true}} {
		key := metadataKey("s1", opts)
		if seen[key] {
			t.Errorf("metadata key %q is not unique per options", key)
		}
		seen[key] = true
	}
}
