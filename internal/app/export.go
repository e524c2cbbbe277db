package app

import (
	"strconv"
	"time"

	"github.com/tidwall/sjson"
)

// ExportHistory renders the account and its snapshot log as JSON:
//
//	{"account":"default","balance":150,"position":1,"length":2,
//	 "snapshots":[{"id":"...","seq":0,"kind":"initial","value":100,
//	              "time":"...","current":false}, ...]}
func (app *Application) ExportHistory() (string, error) {
	if app.closed.Load() {
		return "", ErrShutdown
	}

	h := app.account.History()
	snaps := h.Snapshots()
	pos := h.Position()

	doc := "{}"
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}

	set("account", app.account.Name())
	set("balance", app.account.Balance())
	set("position", pos)
	set("length", len(snaps))
	for i, snap := range snaps {
		prefix := "snapshots." + strconv.Itoa(i) + "."
		set(prefix+"id", snap.ID().String())
		set(prefix+"seq", snap.Seq())
		set(prefix+"kind", snap.Kind().String())
		set(prefix+"value", snap.Value())
		set(prefix+"time", snap.Time().UTC().Format(time.RFC3339Nano))
		set(prefix+"current", i == pos)
	}
	if err != nil {
		return "", err
	}
	return doc, nil
}
