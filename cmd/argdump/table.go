package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dzonerzy/snapopt/opt"
	"github.com/dzonerzy/snapopt/tablefile"
)

var tableHeader = []string{"ID", "SPELLINGS", "KIND", "GROUP", "ALIAS", "HELP"}

func newTableCmd(a *app) *cobra.Command {
	var dump, all bool
	cmd := &cobra.Command{
		Use:   "table",
		Short: "List the options of the table",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			tbl, err := a.loadTable()
			if err != nil {
				return err
			}
			if dump {
				return tablefile.Dump(a.stdout, tbl)
			}
			return writeTable(a.stdout, tableHeader, tableRows(tbl, all))
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "write the table as a TOML table file")
	cmd.Flags().BoolVar(&all, "all", false, "include hidden options")
	return cmd
}

func tableRows(t *opt.Table, all bool) [][]string {
	var rows [][]string
	for _, o := range t.Options() {
		if o.Has(opt.FlagHidden) && !all {
			continue
		}
		spellings := make([]string, 0, len(o.Prefixes()))
		for _, p := range o.Prefixes() {
			spellings = append(spellings, p+o.Name())
		}
		if o.Kind() == opt.KindGroup {
			spellings = append(spellings, o.Name())
		}
		kind := o.Kind().String()
		if o.Kind() == opt.KindMulti {
			kind += "(" + strconv.Itoa(o.NumArgs()) + ")"
		}
		group, alias := "", ""
		if g := o.Group(); g != nil {
			group = g.Name()
		}
		if target := o.Alias(); target != nil {
			alias = target.PrefixedName()
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(o.ID()), 10),
			strings.Join(spellings, " "),
			kind,
			group,
			alias,
			o.Help(),
		})
	}
	return rows
}
