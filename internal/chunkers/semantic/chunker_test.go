package semantic

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

func texts(chunks []domain.Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNew_Defaults(t *testing.T) {
	c := New()
	if c.chunkSize != 25 {
		t.Errorf("chunkSize = %d, want 25", c.chunkSize)
	}
	if c.overlap != 12 {
		t.Errorf("overlap = %d, want 12", c.overlap)
	}
	if c.Name() != "semantic" {
		t.Errorf("Name() = %q, want %q", c.Name(), "semantic")
	}
}

func TestNew_Options(t *testing.T) {
	c := New(WithChunkSize(40), WithOverlap(10))
	if c.chunkSize != 40 {
		t.Errorf("chunkSize = %d, want 40", c.chunkSize)
	}
	if c.overlap != 10 {
		t.Errorf("overlap = %d, want 10", c.overlap)
	}
}

func TestNew_IgnoresInvalidOptions(t *testing.T) {
	c := New(WithChunkSize(0), WithOverlap(-5))
	if c.chunkSize != DefaultChunkSize {
		t.Errorf("chunkSize = %d, want %d", c.chunkSize, DefaultChunkSize)
	}
	if c.overlap != DefaultChunkOverlap {
		t.Errorf("overlap = %d, want %d", c.overlap, DefaultChunkOverlap)
	}
}

func TestNew_OverlapClampedBelowChunkSize(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(10))
	if c.overlap != 5 {
		t.Errorf("overlap = %d, want 5", c.overlap)
	}
}

func TestChunker_Chunk(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		text string
		want []string
	}{
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "single word yields nothing",
			text: "hello",
			want: nil,
		},
		{
			name: "single word with padding yields nothing",
			text: "  hello  ",
			want: nil,
		},
		{
			name: "short phrase fits one fragment",
			text: "you are so dumb and ugly",
			want: []string{"you are so dumb and ugly"},
		},
		{
			name: "overlapping fragments",
			text: "the quick brown fox jumps over the lazy dog",
			want: []string{
				"the quick brown fox jumps",
				"fox jumps over the lazy",
				"the lazy dog",
			},
		},
		{
			name: "oversized word stands alone",
			opts: []Option{WithChunkSize(5), WithOverlap(2)},
			text: "a verylongword b",
			want: []string{"a", "verylongword", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.opts...)
			chunks, err := c.Chunk(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Chunk() error = %v", err)
			}
			if got := texts(chunks); !equal(got, tt.want) {
				t.Errorf("Chunk() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChunker_Chunk_Metadata(t *testing.T) {
	chunks, err := New().Chunk(context.Background(), "the quick brown fox jumps over the lazy dog")
	if err != nil {
		t.Fatalf("Chunk() error = %v", err)
	}
	for i, chunk := range chunks {
		if chunk.Origin != domain.ChunkOriginSemantic {
			t.Errorf("chunk[%d].Origin = %q, want %q", i, chunk.Origin, domain.ChunkOriginSemantic)
		}
		if chunk.Position != i {
			t.Errorf("chunk[%d].Position = %d, want %d", i, chunk.Position, i)
		}
	}
}

func TestChunker_Chunk_NeverCutsWords(t *testing.T) {
	text := "sometimes people write really long messages with many words in them to see what happens"
	words := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		words[w] = true
	}

	chunks, err := New(WithChunkSize(20), WithOverlap(8)).Chunk(context.Background(), text)
	if err != nil {
		t.Fatalf("Chunk() error = %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}

	covered := make(map[string]bool)
	for _, chunk := range chunks {
		if n := utf8.RuneCountInString(chunk.Text); n > 20 {
			t.Errorf("chunk %q has %d characters, want <= 20", chunk.Text, n)
		}
		for _, w := range strings.Fields(chunk.Text) {
			if !words[w] {
				t.Errorf("chunk %q contains cut word %q", chunk.Text, w)
			}
			covered[w] = true
		}
	}
	for w := range words {
		if !covered[w] {
			t.Errorf("word %q not covered by any chunk", w)
		}
	}
}

func TestChunker_Chunk_CountsRunes(t *testing.T) {
	// Each word is 5 runes but 10 bytes.
	text := "ñññññ ñññññ ñññññ ñññññ"
	chunks, err := New(WithChunkSize(11), WithOverlap(5)).Chunk(context.Background(), text)
	if err != nil {
		t.Fatalf("Chunk() error = %v", err)
	}
	want := []string{"ñññññ ñññññ", "ñññññ ñññññ", "ñññññ ñññññ"}
	if got := texts(chunks); !equal(got, want) {
		t.Errorf("Chunk() = %q, want %q", got, want)
	}
}
