package sim

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"
	"time"
)

// WriteResultCSV writes the per-hour result series, one row per simulated
// hour with beginning-of-hour battery state.
func WriteResultCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"time",
		"usage_kwh",
		"lbmp_per_mwh",
		"delivery_charge",
		"apparent_price",
		"state_of_charge_kwh",
		"available_to_discharge_kwh",
		"available_store_cap_kwh",
		"charge_decision_kwh",
		"action",
		"net_purchased_kwh",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Index),
			r.Time.Format(time.RFC3339),
			fmtFloat(r.UsageKWh),
			fmtFloat(r.LBMPPerMWh),
			fmtFloat(r.DeliveryCharge),
			fmtFloat(r.ApparentPrice),
			fmtFloat(r.StateOfChargeKWh),
			fmtFloat(r.AvailableToDischargeKWh),
			fmtFloat(r.AvailableStoreCapKWh),
			fmtFloat(r.ChargeDecisionKWh),
			string(r.Action),
			fmtFloat(r.NetPurchasedKWh),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// WriteSummaryCSV writes the summary statistics as name/value rows, sorted
// by name so repeated runs produce identical files.
func WriteSummaryCSV(path string, summary map[string]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"statistic", "value"}); err != nil {
		return err
	}
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.Write([]string{k, fmtFloat(summary[k])}); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
