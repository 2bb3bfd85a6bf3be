package validators

import (
	"go.mongodb.org/mongo-driver/bson"

	"stayhub/pkg/docstore"
)

// DocumentValidator matches one whole collection as written by
// docstore.MongoStore.
var DocumentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "data", "updated_at"},
		"additionalProperties": false,
		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
				"enum":     docstore.All,
			},
			"data":       bson.M{"bsonType": "binData"},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}
