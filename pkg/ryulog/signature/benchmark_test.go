package signature

import (
	"strings"
	"testing"
)

func BenchmarkBuiltin_Match(b *testing.B) {
	set := Builtin()
	texts := []string{
		"00:05:12.345 |E| Gpu ShaderCache: failed\n    at Ryujinx.Graphics.Gpu.Shader.ShaderCache.Initialize()",
		"00:00:03.000 |E| HLE.OsThread.42 Service: stub",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = set.Match(texts)
	}
}

func BenchmarkBuiltin_Match_NoHit(b *testing.B) {
	set := Builtin()
	texts := []string{strings.Repeat("00:00:01.000 |E| Gpu nothing interesting here\n", 200)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = set.Match(texts)
	}
}

func BenchmarkSet_Regex(b *testing.B) {
	set, err := NewSet([]Signature{
		{ID: "oom", Severity: "warning", Note: "oom", Regex: `OutOfMemoryException|Out of memory`},
	})
	if err != nil {
		b.Fatalf("Failed to create set: %v", err)
	}
	texts := []string{strings.Repeat("x", 4096) + "Out of memory"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = set.Match(texts)
	}
}

func BenchmarkLoadBytes(b *testing.B) {
	data := []byte(`version: 1
signatures:
  - id: vulkan_device_lost
    severity: blocking
    note: Vulkan device lost
    terms: [VK_ERROR_DEVICE_LOST]
  - id: out_of_memory
    severity: warning
    note: Out of memory
    regex: 'OutOfMemoryException'
`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = LoadBytes(data)
	}
}
