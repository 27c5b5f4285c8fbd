package output

import (
	"strconv"
	"strings"

	"github.com/agentstation/schemasync"
	pkgsync "github.com/agentstation/schemasync/pkg/sync"
)

// ResultToTableData renders a sync result as a property/value table.
func ResultToTableData(r *pkgsync.Result) Data {
	rows := [][]string{
		{"Run ID", r.RunID},
		{"Action", r.Action.String()},
		{"Current", version(r.Current)},
		{"Target", version(r.Target)},
		{"Latest", version(r.Latest)},
		{"Published", yesNo(r.Published)},
		{"Deployed", yesNo(r.Deployed)},
	}
	if r.DeploymentID != "" {
		rows = append(rows, []string{"Deployment", r.DeploymentID})
	}
	if r.Stage != "" {
		rows = append(rows, []string{"Stage", r.Stage})
	}
	if r.DryRun {
		rows = append(rows, []string{"Dry Run", "yes"})
	}
	rows = append(rows, []string{"Duration", r.Duration.String()})

	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

// VersionsToTableData renders registry versions, marking the applied and latest ones.
func VersionsToTableData(versions []int, current int) Data {
	latest := 0
	if len(versions) > 0 {
		latest = versions[len(versions)-1]
	}

	rows := make([][]string, 0, len(versions))
	for _, v := range versions {
		var marks []string
		if v == current {
			marks = append(marks, "applied")
		}
		if v == latest {
			marks = append(marks, "latest")
		}
		rows = append(rows, []string{strconv.Itoa(v), strings.Join(marks, ", ")})
	}

	return Data{
		Headers:         []string{"Version", "Note"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft},
	}
}

// StatusToTableData renders a status preview.
func StatusToTableData(st *schemasync.Status) Data {
	rollback := st.RollbackError
	if st.Rollback != nil {
		rollback = st.Rollback.String()
	}
	inSync := "no"
	if st.InSync() {
		inSync = "yes"
	}

	return Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"Registry", st.Target.Registry},
			{"Schema", st.Target.Schema},
			{"API", st.Target.APIID},
			{"Model", st.Target.Model},
			{"Current", version(st.Current)},
			{"Latest", version(st.Latest)},
			{"In Sync", inSync},
			{"Sync Would", st.Forward.String()},
			{"Rollback Would", rollback},
		},
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

func version(v int) string {
	if v < 1 {
		return "-"
	}
	return strconv.Itoa(v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
