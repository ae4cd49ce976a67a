package outbox

const dailyWorkoutCreatedSchema = `{
  "type": "object",
  "title": "DailyWorkoutCreated",
  "properties": {
    "workout_id": {"type": "string"},
    "user_id": {"type": "string"},
    "date": {"type": "string", "format": "date"},
    "day_of_week": {"type": "integer", "minimum": 0, "maximum": 6},
    "routine_id": {"type": "string"},
    "routine_name": {"type": "string"},
    "exercise_count": {"type": "integer"},
    "created_at": {"type": "string", "format": "date-time"}
  },
  "required": ["workout_id", "user_id", "date", "day_of_week", "routine_id", "routine_name", "exercise_count", "created_at"],
  "additionalProperties": false
}`

const exerciseStatusChangedSchema = `{
  "type": "object",
  "title": "ExerciseStatusChanged",
  "properties": {
    "workout_id": {"type": "string"},
    "user_id": {"type": "string"},
    "exercise_id": {"type": "string"},
    "status": {"type": "string", "enum": ["pending", "completed", "skipped"]},
    "applied": {"type": "boolean"},
    "workout_completed": {"type": "boolean"},
    "occurred_at": {"type": "string", "format": "date-time"}
  },
  "required": ["workout_id", "user_id", "exercise_id", "status", "applied", "workout_completed", "occurred_at"],
  "additionalProperties": false
}`

const progressRecordedSchema = `{
  "type": "object",
  "title": "ProgressRecorded",
  "properties": {
    "entry_id": {"type": "string"},
    "user_id": {"type": "string"},
    "routine_id": {"type": "string"},
    "exercise_id": {"type": "string"},
    "reps": {"type": "string"},
    "weight": {"type": "string"},
    "notes": {"type": "string"},
    "recorded_at": {"type": "string", "format": "date-time"}
  },
  "required": ["entry_id", "user_id", "routine_id", "exercise_id", "recorded_at"],
  "additionalProperties": false
}`
