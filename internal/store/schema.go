package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	snapshotsTable      = "snapshots"
	progressEventsTable = "progress_events"
	xpEventsTable       = "xp_events"
	badgeEventsTable    = "badge_events"
)

func idColumn() *schema.Column {
	return &schema.Column{Name: "id", Type: field.TypeInt64, Increment: true}
}

// eventColumns are shared by every event table.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "user_id", Type: field.TypeString},
	}
}

func eventTable(name string, extra ...*schema.Column) *schema.Table {
	t := schema.NewTable(name).AddPrimary(idColumn())
	for _, c := range eventColumns() {
		t.AddColumn(c)
	}
	for _, c := range extra {
		t.AddColumn(c)
	}
	return t.AddIndex(name+"_user_id_sequence", false, []string{"user_id", "sequence"})
}

// Tables is the full schema, applied by ent's migrator on Open.
var Tables = []*schema.Table{
	schema.NewTable(snapshotsTable).
		AddPrimary(idColumn()).
		AddColumn(&schema.Column{Name: "user_id", Type: field.TypeString}).
		AddColumn(&schema.Column{Name: "sequence", Type: field.TypeInt64, Unique: true}).
		AddColumn(&schema.Column{Name: "timestamp", Type: field.TypeTime}).
		AddColumn(&schema.Column{Name: "data", Type: field.TypeJSON}).
		AddIndex("snapshots_user_id_sequence", false, []string{"user_id", "sequence"}),

	eventTable(progressEventsTable,
		&schema.Column{Name: "item_id", Type: field.TypeString},
		&schema.Column{Name: "from_status", Type: field.TypeString},
		&schema.Column{Name: "to_status", Type: field.TypeString},
		&schema.Column{Name: "trigger_name", Type: field.TypeString},
	),

	eventTable(xpEventsTable,
		&schema.Column{Name: "amount", Type: field.TypeInt},
		&schema.Column{Name: "source", Type: field.TypeString},
		&schema.Column{Name: "reason", Type: field.TypeString, Nullable: true},
	),

	eventTable(badgeEventsTable,
		&schema.Column{Name: "badge_id", Type: field.TypeString},
		&schema.Column{Name: "badge_name", Type: field.TypeString},
		&schema.Column{Name: "rarity", Type: field.TypeString},
		&schema.Column{Name: "xp_awarded", Type: field.TypeInt},
	),
}
