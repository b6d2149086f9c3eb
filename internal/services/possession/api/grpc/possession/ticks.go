package possession

import (
	"fmt"
	"time"

	"github.com/louisbranch/possession/internal/services/possession/storage"
	"google.golang.org/protobuf/types/known/structpb"
)

// Tick page sizes for ListTicks.
const (
	DefaultTickPageSize = 20
	MaxTickPageSize     = 500
)

const (
	tickFieldID          = "id"
	tickFieldCharacterID = "character_id"
	tickFieldTick        = "tick"
	tickFieldState       = "coordinator_state"
	tickFieldDispatched  = "dispatched"
	tickFieldError       = "error"
	tickFieldCreatedAt   = "created_at"
)

func ticksToList(records []storage.TickRecord) (*structpb.ListValue, error) {
	values := make([]*structpb.Value, 0, len(records))
	for _, record := range records {
		fields, err := structpb.NewStruct(map[string]any{
			tickFieldID:          record.ID,
			tickFieldCharacterID: record.CharacterID,
			tickFieldTick:        record.Tick,
			tickFieldState:       record.CoordinatorState,
			tickFieldDispatched:  record.Dispatched,
			tickFieldError:       record.Error,
			tickFieldCreatedAt:   record.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		if err != nil {
			return nil, fmt.Errorf("encode tick %d: %w", record.Tick, err)
		}
		values = append(values, structpb.NewStructValue(fields))
	}
	return &structpb.ListValue{Values: values}, nil
}

func ticksFromList(list *structpb.ListValue) ([]storage.TickRecord, error) {
	records := make([]storage.TickRecord, 0, len(list.GetValues()))
	for i, value := range list.GetValues() {
		fields := value.GetStructValue().GetFields()
		if fields == nil {
			return nil, fmt.Errorf("tick %d is not a struct", i)
		}
		var createdAt time.Time
		if raw := fields[tickFieldCreatedAt].GetStringValue(); raw != "" {
			parsed, err := time.Parse(time.RFC3339Nano, raw)
			if err != nil {
				return nil, fmt.Errorf("decode tick %d created_at: %w", i, err)
			}
			createdAt = parsed
		}
		records = append(records, storage.TickRecord{
			ID:               fields[tickFieldID].GetStringValue(),
			CharacterID:      fields[tickFieldCharacterID].GetStringValue(),
			Tick:             int64(fields[tickFieldTick].GetNumberValue()),
			CoordinatorState: fields[tickFieldState].GetStringValue(),
			Dispatched:       fields[tickFieldDispatched].GetBoolValue(),
			Error:            fields[tickFieldError].GetStringValue(),
			CreatedAt:        createdAt,
		})
	}
	return records, nil
}
