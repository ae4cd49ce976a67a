package domain

type routineTemplate struct {
	role      string
	name      string
	desc      string
	exercises []ExerciseInput
}

func templateExercise(name string, sets int, reps string) ExerciseInput {
	return ExerciseInput{
		Name:   name,
		Sets:   Some(sets),
		Reps:   Some(reps),
		Weight: Some(DefaultWeight),
	}
}

// defaultRoutines are created for users whose routines do not cover every
// Push-Pull-Legs role.
var defaultRoutines = []routineTemplate{
	{
		role: rolePush,
		name: "Push Day",
		desc: "Chest, shoulders and triceps",
		exercises: []ExerciseInput{
			templateExercise("Bench Press", 4, "8-10"),
			templateExercise("Overhead Press", 3, "8-10"),
			templateExercise("Incline Dumbbell Press", 3, "10-12"),
			templateExercise("Lateral Raise", 3, "12-15"),
			templateExercise("Triceps Pushdown", 3, "10-12"),
			templateExercise("Overhead Triceps Extension", 3, "10-12"),
		},
	},
	{
		role: rolePull,
		name: "Pull Day",
		desc: "Back and biceps",
		exercises: []ExerciseInput{
			templateExercise("Deadlift", 3, "5"),
			templateExercise("Pull-Up", 4, "6-10"),
			templateExercise("Barbell Row", 3, "8-10"),
			templateExercise("Face Pull", 3, "12-15"),
			templateExercise("Barbell Curl", 3, "10-12"),
			templateExercise("Hammer Curl", 3, "10-12"),
		},
	},
	{
		role: roleLegs,
		name: "Leg Day",
		desc: "Quads, hamstrings, glutes and calves",
		exercises: []ExerciseInput{
			templateExercise("Back Squat", 4, "6-8"),
			templateExercise("Romanian Deadlift", 3, "8-10"),
			templateExercise("Leg Press", 3, "10-12"),
			templateExercise("Walking Lunge", 3, "12"),
			templateExercise("Leg Curl", 3, "10-12"),
			templateExercise("Standing Calf Raise", 4, "12-15"),
		},
	},
}
