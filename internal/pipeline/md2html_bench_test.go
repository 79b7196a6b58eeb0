//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// BenchmarkGoldmarkToHTML benchmarks markdown to HTML conversion of posts
// with growing section counts.
func BenchmarkGoldmarkToHTML(b *testing.B) {
	converter := NewGoldmarkConverter(RenderOptions{})
	ctx := context.Background()

	for _, size := range []int{1, 10, 50, 200} {
		content := generatePostMarkdown(size)
		b.Run(fmt.Sprintf("sections_%d", size), func(b *testing.B) {
			b.ReportAllocs()

			for b.Loop() {
				if _, err := converter.ToHTML(ctx, content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkGoldmarkToHTMLSanitized measures the bluemonday pass overhead.
func BenchmarkGoldmarkToHTMLSanitized(b *testing.B) {
	converter := NewGoldmarkConverter(RenderOptions{AllowHTML: true, Sanitize: true})
	ctx := context.Background()
	content := generatePostMarkdown(50)

	b.ReportAllocs()

	for b.Loop() {
		if _, err := converter.ToHTML(ctx, content); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkGoldmarkToHTMLParallel benchmarks concurrent HTML conversion.
func BenchmarkGoldmarkToHTMLParallel(b *testing.B) {
	converter := NewGoldmarkConverter(RenderOptions{})
	ctx := context.Background()
	content := generatePostMarkdown(20)

	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := converter.ToHTML(ctx, content); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkPreprocessAndConvert covers the full per-post path.
func BenchmarkPreprocessAndConvert(b *testing.B) {
	pre := &MathPreprocessor{}
	converter := NewGoldmarkConverter(RenderOptions{})
	ctx := context.Background()
	content := generatePostMarkdown(50)

	b.ReportAllocs()

	for b.Loop() {
		if _, err := converter.ToHTML(ctx, pre.PreprocessMarkdown(ctx, content)); err != nil {
			b.Fatal(err)
		}
	}
}

func generatePostMarkdown(sections int) string {
	var sb strings.Builder
	sb.WriteString("# Notes\n\nIntro with **bold** text and $\n x^2 \n$ inline.\n\n")

	for i := 0; i < sections; i++ {
		fmt.Fprintf(&sb, "## Section %d\n\n", i+1)
		sb.WriteString("A paragraph with [a link](https://example.com) and `code`.\n\n")
		fmt.Fprintf(&sb, "$$\\begin{aligned}\n a &= b \\tag{%d}\n\\end{aligned}$$\n\n", i+1)

		if i%3 == 0 {
			sb.WriteString("```lean\ntheorem add_zero (n : Nat) : n + 0 = n := by simp\n```\n\n")
		}
		if i%5 == 0 {
			sb.WriteString("| A | B |\n|---|---|\n| 1 | 2 |\n\n")
		}
	}

	return sb.String()
}

// BenchmarkTableOfContents measures heading extraction on rendered posts.
func BenchmarkTableOfContents(b *testing.B) {
	converter := NewGoldmarkConverter(RenderOptions{})
	ctx := context.Background()

	for _, size := range []int{10, 200} {
		html, err := converter.ToHTML(ctx, generatePostMarkdown(size))
		if err != nil {
			b.Fatal(err)
		}
		b.Run(fmt.Sprintf("sections_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := TableOfContents(html, TOCMinLevel, TOCMaxLevel); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
