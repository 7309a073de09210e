package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/oklog/ulid/v2"
)

// Key prefix for post documents in key-value backends
const PostKeyPrefix = "post:"

// newID returns a new lexically sortable post ID.
func newID() string {
	return ulid.Make().String()
}

func postKey(id string) []byte {
	return []byte(PostKeyPrefix + id)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
