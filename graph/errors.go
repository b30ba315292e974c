package graph

import "errors"

var errNotSSA = errors.New("graph: program is not in single static assignment form")
