package course

import "github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"

var Schema = query.NewSchema(
	query.Field{Name: "id", Column: "c.id", Type: query.TypeString},
	query.Field{Name: "title", Column: "c.title", Type: query.TypeString},
	query.Field{Name: "description", Column: "c.description", Type: query.TypeString},
	query.Field{Name: "weeks", Column: "c.weeks", Type: query.TypeNumber},
	query.Field{Name: "tuition", Column: "c.tuition", Type: query.TypeNumber},
	query.Field{Name: "minimumSkill", Column: "c.minimum_skill", Type: query.TypeString},
	query.Field{Name: "scholarshipAvailable", Column: "c.scholarship_available", Type: query.TypeBool},
	query.Field{Name: "bootcamp", Column: "c.bootcamp_id", Type: query.TypeString},
	query.Field{Name: "user", Column: "c.user_id", Type: query.TypeString},
	query.Field{Name: "createdAt", Column: "c.created_at", Type: query.TypeDate},
	query.Field{Name: "version", Column: "c.version", Type: query.TypeNumber, Hidden: true},
)
