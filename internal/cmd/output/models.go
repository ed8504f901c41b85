package output

import (
	"io"
	"slices"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/agentstation/esxsync/internal/sources/meraki"
	"github.com/agentstation/esxsync/pkg/devices"
	"github.com/agentstation/esxsync/pkg/esx"
)

// OrganizationsToTableData lists organizations sorted by name.
func OrganizationsToTableData(orgs []meraki.Organization, wide bool) Data {
	data := Data{Headers: []string{"Name", "ID"}}
	if wide {
		data.Headers = append(data.Headers, "URL")
	}
	for _, org := range orgs {
		row := []string{org.Name, org.ID}
		if wide {
			row = append(row, orDash(org.URL))
		}
		data.Rows = append(data.Rows, row)
	}
	sortRowsByName(data.Rows, 0)
	return data
}

// DevicesToTableData lists devices sorted by name. Devices without a BSSID
// show a dash.
func DevicesToTableData(devs []devices.Device, wide bool) Data {
	data := Data{Headers: []string{"Name", "Model", "BSSID"}}
	if wide {
		data.Headers = append(data.Headers, "Serial", "Organization")
	}
	for _, d := range devs {
		row := []string{d.Name, orDash(d.Model), orDash(d.BSSID)}
		if wide {
			row = append(row, d.Serial, orDash(d.Organization))
		}
		data.Rows = append(data.Rows, row)
	}
	sortRowsByName(data.Rows, 0)
	return data
}

// PlanToTableData lists plan entries in plan order.
func PlanToTableData(entries []esx.PlanEntry) Data {
	data := Data{Headers: []string{"Access Point", "New Name", "New Model"}}
	for _, e := range entries {
		data.Rows = append(data.Rows, []string{e.AccessPointID, orDash(e.Name), orDash(e.Model)})
	}
	return data
}

// AccessPointsToTableData lists project access points sorted by name.
func AccessPointsToTableData(aps []esx.AccessPointSummary, wide bool) Data {
	data := Data{
		Headers:         []string{"Name", "Model", "Mine", "Measurements"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignCenter, AlignRight},
	}
	if wide {
		data.Headers = append(data.Headers, "Radios", "ID")
		data.ColumnAlignment = append(data.ColumnAlignment, AlignRight, AlignLeft)
	}
	for _, ap := range aps {
		mine := ""
		if ap.Mine {
			mine = "yes"
		}
		row := []string{ap.Name, orDash(ap.Model), mine, strconv.Itoa(ap.Measurements)}
		if wide {
			row = append(row, strconv.Itoa(ap.Radios), ap.ID)
		}
		data.Rows = append(data.Rows, row)
	}
	sortRowsByName(data.Rows, 0)
	return data
}

// FormatOrganizations writes organizations in format.
func FormatOrganizations(w io.Writer, format Format, orgs []meraki.Organization) error {
	return write(w, format, orgs, OrganizationsToTableData)
}

// FormatDevices writes devices in format.
func FormatDevices(w io.Writer, format Format, devs []devices.Device) error {
	return write(w, format, devs, DevicesToTableData)
}

// FormatPlan writes plan entries in format.
func FormatPlan(w io.Writer, format Format, entries []esx.PlanEntry) error {
	return write(w, format, entries, func(e []esx.PlanEntry, _ bool) Data { return PlanToTableData(e) })
}

// FormatAccessPoints writes project access point summaries in format.
func FormatAccessPoints(w io.Writer, format Format, aps []esx.AccessPointSummary) error {
	return write(w, format, aps, AccessPointsToTableData)
}

// FormatAny writes data as is. Table formats only render Data; anything
// else falls back to JSON.
func FormatAny(w io.Writer, format Format, data any) error {
	return NewFormatter(format).Format(w, data)
}

// write renders items through table for table formats and writes them
// unchanged otherwise.
func write[T any](w io.Writer, format Format, items []T, table func([]T, bool) Data) error {
	if format.IsTable() {
		return NewFormatter(format).Format(w, table(items, format == FormatWide))
	}
	return NewFormatter(format).Format(w, items)
}

// sortRowsByName orders rows by column col the way people read names:
// case-insensitive, accents after the base letter and digit runs as
// numbers, so AP-2 comes before AP-10.
func sortRowsByName(rows [][]string, col int) {
	c := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)
	slices.SortStableFunc(rows, func(a, b []string) int {
		return c.CompareString(a[col], b[col])
	})
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
