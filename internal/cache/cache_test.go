package cache

import (
	"strings"
	"testing"
)

func TestCache_GetSet(t *testing.T) {
	c := New(true)
	if _, _, ok := c.Get("seats", 1); ok {
		t.Fatal("hit on empty cache")
	}

	etag := c.Set("seats", 1, []byte(`[1]`))
	data, got, ok := c.Get("seats", 1)
	if !ok || string(data) != `[1]` || got != etag {
		t.Errorf("Get = %s %s %v, want [1] %s true", data, got, ok, etag)
	}
	if _, _, ok := c.Get("seats", 2); ok {
		t.Error("hit for a load id that was never stored")
	}
}

func TestCache_NewerLoadEvicts(t *testing.T) {
	c := New(true)
	c.Set("seats", 1, []byte(`a`))
	c.Set("votes", 1, []byte(`b`))
	c.Set("seats", 2, []byte(`c`))

	if _, _, ok := c.Get("votes", 1); ok {
		t.Error("entry from an older load survived")
	}
	if stats := c.Stats(); stats["total_keys"] != 1 || stats["load_id"] != uint64(2) {
		t.Errorf("Stats = %v", stats)
	}

	c.Set("votes", 1, []byte(`late`))
	if _, _, ok := c.Get("votes", 1); ok {
		t.Error("response for an older load was stored")
	}
}

func TestCache_Disabled(t *testing.T) {
	c := New(false)
	etag := c.Set("seats", 1, []byte(`x`))
	if etag != ComputeETag([]byte(`x`)) {
		t.Errorf("etag = %s", etag)
	}
	if _, _, ok := c.Get("seats", 1); ok {
		t.Error("disabled cache returned a hit")
	}
}

func TestComputeETag(t *testing.T) {
	a := ComputeETag([]byte("hello"))
	if !strings.HasPrefix(a, `W/"`) || len(a) != len(`W/""`)+16 {
		t.Errorf("ComputeETag = %s", a)
	}
	if a != ComputeETag([]byte("hello")) {
		t.Error("ComputeETag is not deterministic")
	}
	if a == ComputeETag([]byte("hello!")) {
		t.Error("different bodies share an ETag")
	}
}

func TestCheckETagMatch(t *testing.T) {
	etag := `W/"abc"`
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{"*", true},
		{`W/"abc"`, true},
		{`"abc"`, true},
		{`"x", W/"abc"`, true},
		{`W/"abd"`, false},
	}
	for _, tt := range tests {
		if got := CheckETagMatch(tt.header, etag); got != tt.want {
			t.Errorf("CheckETagMatch(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}
