package pipeline

import (
	"fmt"

	"github.com/ledgerchart/ledgerchart/internal/classify"
	"github.com/ledgerchart/ledgerchart/internal/normalize"
)

// pinnedCategories is the fixed display priority shared by both sources:
// these buckets lead every month's column order when present, in this
// order; everything else sorts by value.
var pinnedCategories = []string{
	"bydlení",
	"zdraví a pojištění",
	"restaurace / fast food",
	"potraviny (supermarket)",
	"doprava",
	"zábava a volný čas",
	"oblečení a styl",
	"ostatní nákupy",
	"jiné finanční výdaje",
}

// George returns the source configuration for the george bank export.
func George() Source {
	return Source{
		Name: "george",
		Schema: normalize.Schema{
			Date:           "Datum zaúčtování",
			Amount:         "Částka",
			Currency:       "Měna",
			Category:       "Kategorie",
			CounterAccount: "Protiúčet",
			CounterName:    "Název protiúčtu",
		},
		Taxonomy: classify.George(),
		// Transfers between the holder's own accounts, not spending.
		ExcludeNames: []string{
			"Dvořák Michal",
			"DVORAK MICHAL",
			"Michal Csob",
		},
		Pinned: pinnedCategories,
	}
}

// Patron returns the source configuration for the patron bank export,
// whose schema uses sent-date semantics for the booking date.
func Patron() Source {
	return Source{
		Name: "patron",
		Schema: normalize.Schema{
			Date:           "Odesláno",
			Amount:         "Částka",
			Currency:       "Měna",
			Category:       "Název kategorie",
			CounterAccount: "Číslo protiúčtu",
			CounterName:    "Název účtu příjemce",
		},
		Taxonomy: classify.Patron(),
		ExcludeNames: []string{
			"DVOŘÁKOVÁ LENKA",
		},
		Pinned: pinnedCategories,
	}
}

// SourceByName resolves a built-in source configuration.
func SourceByName(name string) (Source, error) {
	switch name {
	case "george":
		return George(), nil
	case "patron":
		return Patron(), nil
	default:
		return Source{}, fmt.Errorf("unknown ledger source %q (want george or patron)", name)
	}
}
