package query

type DataSet struct {
	Identifier string
}

type AllDataSets struct{}
