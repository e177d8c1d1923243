package bcres

// Options controls optional parser behavior. Unlike the teacher's
// load.Loader, which takes directory overrides through SetDir, this
// module has nothing disk-shaped to configure — Options is passed
// explicitly to Parse rather than discovered from the environment.
type Options struct {
	// Strict makes ParseContainer check every dictionary slot's count
	// against its dictionary (§7 CountMismatch). With Strict false those
	// slot checks are skipped; unknown discriminants and the count checks
	// inside models and skeletons fail in either mode.
	Strict bool
}

// DefaultOptions is Strict: true, matching the reference decoder's
// behavior of never returning a partial object graph.
var DefaultOptions = Options{Strict: true}
