package ctdf

type DataSource struct {
	OriginalFormat string `groups:"internal"`
	Provider       string `groups:"internal"`
	DatasetID      string `groups:"internal"`
	Timestamp      string `groups:"internal"`
}
