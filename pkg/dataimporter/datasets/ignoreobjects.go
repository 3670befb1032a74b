package datasets

type IgnoreObjects struct {
	Services IgnoreObjectServices
}

type IgnoreObjectServices struct {
	ByOperator []string
}
