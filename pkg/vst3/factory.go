package vst3

// FactoryInfo describes the vendor that built a plugin module.
type FactoryInfo struct {
	Vendor string
	URL    string
	Email  string
}

// ClassInfo is one class descriptor exported by a factory. Category selects
// the broad kind (audio effect, controller, ...); SubCategories is the
// free-form string used by discovery heuristics ("Fx|Dynamics",
// "Instrument|Synth", ...).
type ClassInfo struct {
	ID            ClassID
	Name          string
	Category      string
	SubCategories string
	Vendor        string
	Version       string
}

// Factory produces the polymorphic plugin objects of one loaded module.
type Factory interface {
	Info() FactoryInfo
	ClassInfos() []ClassInfo

	// CreateInstance instantiates a class. The returned object is queried
	// for capabilities by type assertion. Nil means the factory could not
	// produce the class.
	CreateInstance(id ClassID) Unknown
}
