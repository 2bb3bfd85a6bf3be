package validators

import (
	"reflect"
	"slices"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"stayhub/pkg/docstore"
)

// The schema must accept exactly what MongoStore writes.
func TestDocumentValidatorMatchesStoredDocument(t *testing.T) {
	schema := DocumentValidator["$jsonSchema"].(bson.M)
	props := schema["properties"].(bson.M)

	for _, field := range schema["required"].([]string) {
		if _, ok := props[field]; !ok {
			t.Errorf("required field %q has no property schema", field)
		}
	}

	ids := props["_id"].(bson.M)["enum"].([]string)
	if !reflect.DeepEqual(ids, docstore.All) {
		t.Errorf("_id enum %v does not match collections %v", ids, docstore.All)
	}
	if !slices.Contains(ids, docstore.Bookings) {
		t.Error("bookings collection missing from schema")
	}
}
