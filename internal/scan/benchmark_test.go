package scan

import "testing"

// Benchmarks for the hot path: every input line goes through ParseHeader,
// and every header line through SplitTail.

func BenchmarkParseHeader(b *testing.B) {
	line := "[2020.12.14-13.46.03:809][  1]LogTemp: Warning: something happened"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, ok := ParseHeader(line); !ok {
			b.Fatal("expected header match")
		}
	}
}

func BenchmarkParseHeaderMiss(b *testing.B) {
	line := "    continuation line of a stack trace without any timestamp"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, ok := ParseHeader(line); ok {
			b.Fatal("unexpected header match")
		}
	}
}

func BenchmarkSplitTail(b *testing.B) {
	rest := "LogTemp: Warning: something happened"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, _, _, ok := SplitTail(rest); !ok {
			b.Fatal("expected tail match")
		}
	}
}
