// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	blue   = color.New(color.FgBlue)
)

func accessColor(access string) *color.Color {
	switch access {
	case "rw":
		return green
	case "r":
		return blue
	default:
		return yellow
	}
}

func renderProperties(out io.Writer, title string, properties []StaticProperty) error {
	if _, err := bold.Fprintln(out, title); err != nil {
		return err
	}
	if len(properties) == 0 {
		_, err := fmt.Fprintln(out, "  no properties")
		return err
	}

	table := tablewriter.NewWriter(out)
	table.Header("Property", "Type", "Access", "Getter", "Setter", "Style")

	for _, prop := range properties {
		access := prop.Access()
		if err := table.Append(
			prop.Name,
			prop.Type,
			accessColor(access).Sprint(access),
			prop.Getter,
			prop.Setter,
			prop.Style,
		); err != nil {
			return err
		}
	}

	return table.Render()
}
