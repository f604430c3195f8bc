package bootcamp

import "github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"

// Schema lists the queryable bootcamp fields and their backing columns.
var Schema = query.NewSchema(
	query.Field{Name: "id", Column: "b.id", Type: query.TypeString},
	query.Field{Name: "name", Column: "b.name", Type: query.TypeString},
	query.Field{Name: "slug", Column: "b.slug", Type: query.TypeString},
	query.Field{Name: "description", Column: "b.description", Type: query.TypeString},
	query.Field{Name: "website", Column: "b.website", Type: query.TypeString},
	query.Field{Name: "phone", Column: "b.phone", Type: query.TypeString},
	query.Field{Name: "email", Column: "b.email", Type: query.TypeString},
	query.Field{Name: "address", Column: "b.address", Type: query.TypeString},
	query.Field{Name: "careers", Column: "b.careers", Type: query.TypeStringArray},
	query.Field{Name: "averageRating", Column: "b.average_rating", Type: query.TypeNumber},
	query.Field{Name: "averageCost", Column: "b.average_cost", Type: query.TypeNumber},
	query.Field{Name: "image", Column: "b.image", Type: query.TypeString},
	query.Field{Name: "housing", Column: "b.housing", Type: query.TypeBool},
	query.Field{Name: "jobAssistance", Column: "b.job_assistance", Type: query.TypeBool},
	query.Field{Name: "jobGuarantee", Column: "b.job_guarantee", Type: query.TypeBool},
	query.Field{Name: "acceptGi", Column: "b.accept_gi", Type: query.TypeBool},
	query.Field{Name: "user", Column: "b.user_id", Type: query.TypeString},
	query.Field{Name: "createdAt", Column: "b.created_at", Type: query.TypeDate},
	query.Field{Name: "version", Column: "b.version", Type: query.TypeNumber, Hidden: true},
)
