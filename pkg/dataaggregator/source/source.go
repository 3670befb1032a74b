package source

import "errors"

var UnsupportedSourceError = errors.New("query is not supported by this source")
