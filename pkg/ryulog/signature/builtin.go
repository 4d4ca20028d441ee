package signature

// Built-in signature IDs.
const (
	CacheCollision   = "cache_collision"
	CacheCorruption  = "shader_cache_corruption"
	DumpHashMismatch = "dump_hash"
	MissingKeys      = "missing_keys"
)

var builtinSignatures = []Signature{
	{
		ID:       CacheCollision,
		Severity: "warning",
		Note:     "Cache collision detected. Investigate possible shader cache issues",
		Terms:    []string{"Cache collision found"},
	},
	{
		ID:       CacheCorruption,
		Severity: "warning",
		Note:     "Cache corruption detected. Investigate possible shader cache issues",
		Terms: []string{
			"Ryujinx.Graphics.Gpu.Shader.ShaderCache.Initialize()",
			"System.IO.InvalidDataException: End of Central Directory record could not be found",
			"ICSharpCode.SharpZipLib.Zip.ZipException: Cannot find central directory",
		},
	},
	{
		ID:       DumpHashMismatch,
		Severity: "warning",
		Note:     "Dump error detected. Investigate possible bad game/firmware dump issues",
		Terms: []string{
			"ResultFsInvalidIvfcHash",
			"ResultFsNonRealDataVerificationFailed",
		},
	},
	{
		ID:       MissingKeys,
		Severity: "warning",
		Note:     "Keys or firmware out of date, consider updating them",
		Terms:    []string{"LibHac.MissingKeyException"},
	},
}

var builtin = mustNewSet(builtinSignatures)

// Builtin returns the fixed set of known Ryujinx fault signatures.
func Builtin() *Set {
	return builtin
}

// BuiltinSignatures returns a copy of the built-in definitions.
func BuiltinSignatures() []Signature {
	out := make([]Signature, len(builtinSignatures))
	copy(out, builtinSignatures)
	return out
}

func mustNewSet(sigs []Signature) *Set {
	s, err := NewSet(sigs)
	if err != nil {
		panic(err)
	}
	return s
}
