package cast

// Config carries the toggles the casting engine honors. It is threaded
// explicitly through every call so the engine stays a pure function of its
// arguments.
type Config struct {
	// AllowImplicitScalarCast enables the runtime's loose scalar coercions:
	// numeric literal strings to int/float and literal strings to bool.
	AllowImplicitScalarCast bool `toml:"allow_implicit_scalar_cast"`
}
