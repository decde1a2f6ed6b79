//nolint:testpackage // using package name 'benchmark' to access unexported fields for testing
package benchmark

import (
	"testing"

	fuzzy "github.com/dzonerzy/snapopt/internal/fuzzy"
)

// Category: fuzzy (exported paths only)

var spellings = []string{
	"-O", "-o", "-g", "-I", "-D", "-U", "-L", "-l", "-Wl,", "-Wa,", "-W",
	"-std=", "-fpic", "-fno-pic", "-MF", "-MD", "-Xlinker", "-Xarch", "--help",
}

func BenchmarkMatcher_FindBest(b *testing.B) {
	matcher := fuzzy.NewMatcher(2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matcher.FindBest("-fpik", spellings)
	}
}

func BenchmarkMatcher_FindMatches(b *testing.B) {
	matcher := fuzzy.NewMatcher(2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matcher.FindMatches("-Xar", spellings)
	}
}

func BenchmarkConvenienceFunctions(b *testing.B) {
	b.Run("FindBestOption", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			fuzzy.FindBestOption("-fpik", spellings, 2)
		}
	})
	b.Run("FindSuggestions", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			fuzzy.FindSuggestions("-Xar", spellings, 2, 3)
		}
	})
}
