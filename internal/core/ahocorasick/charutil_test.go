package ahocorasick

import "testing"

func TestIsWordChar(t *testing.T) {
	cases := []struct {
		r    rune
		want bool
	}{
		{'a', true},
		{'Z', true},
		{'9', true},
		{'_', true},
		{' ', false},
		{'-', false},
		{'.', false},
		{'é', true}, // e with acute accent
	}
	for _, c := range cases {
		if got := isWordChar(c.r); got != c.want {
			t.Errorf("isWordChar(%q) = %v, want %v", c.r, got, c.want)
		}
	}
}

func TestNormalizeNFC(t *testing.T) {
	// "e" (U+0065) + combining acute accent (U+0301) composes to the
	// single precomposed rune U+00E9 under NFC.
	decomposed := "é"
	want := "é"
	got := normalize(decomposed)
	if got != want {
		t.Fatalf("normalize(%q) = %q, want %q", decomposed, got, want)
	}
	if len([]rune(got)) != 1 {
		t.Fatalf("normalized form should be a single rune, got %d", len([]rune(got)))
	}
}

func TestRingBuffer(t *testing.T) {
	b := newRingBuffer(3)
	if b.len() != 0 {
		t.Fatalf("new ring buffer len = %d, want 0", b.len())
	}
	b.push('a')
	b.push('b')
	if b.len() != 2 {
		t.Fatalf("len after 2 pushes = %d, want 2", b.len())
	}
	if got := b.get(0); got != 'a' {
		t.Fatalf("get(0) = %q, want 'a'", got)
	}

	b.push('c')
	b.push('d') // overflow, evicts 'a'
	if b.len() != 3 {
		t.Fatalf("len at capacity = %d, want 3", b.len())
	}
	want := []rune{'b', 'c', 'd'}
	for i, w := range want {
		if got := b.get(i); got != w {
			t.Fatalf("get(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestRingBufferOutOfBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on out-of-bounds get")
		}
	}()
	b := newRingBuffer(2)
	b.push('x')
	b.get(5)
}
