package ports

// ScriptStore provides the container entrypoint scripts.
//
//go:generate mockgen -source=scripts.go -destination=mocks/mock_scripts.go -package=mocks
type ScriptStore interface {
	// Materialize writes the scripts into dir as executables.
	Materialize(dir string) error
}
