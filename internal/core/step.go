package core

// Step is one file placement (or directory/link creation) applied to a guest root.
type Step interface {
	// Check reports whether Apply would change the guest.
	Check(ctx *SystemContext) (bool, error)
	Apply(ctx *SystemContext) (Result, error)
	GetName() string
	GetType() string
}

// Differ is implemented by steps that can preview their content change.
type Differ interface {
	Diff(ctx *SystemContext) (string, error)
}

// BaseStep holds common fields.
type BaseStep struct {
	Name string
	Type string
}

func (b *BaseStep) GetName() string {
	return b.Name
}

func (b *BaseStep) GetType() string {
	return b.Type
}
