package types

import "iter"

type ItemHandler interface {
	HandleItems(items iter.Seq[MenuItem])
}

type ItemDeleteHandler interface {
	HandleDelete(ids ...string)
}
