package game

// IsValidMissionTransition reports whether a mission may move from one state
// to another. Completed and caught are terminal.
func IsValidMissionTransition(from, to MissionState) bool {
	switch from {
	case MissionWaiting:
		return to == MissionActive
	case MissionActive:
		return to == MissionCompleted || to == MissionCaught
	default:
		return false
	}
}

// IsValidGameStatusTransition reports whether the game status may move from
// one phase to another. Self-transitions are always legal no-ops.
//
// Configuring may jump directly to in_progress because a uniform-difficulty
// assignment flow can finish in one caller-side step without an assigning
// handshake. Assigning and in_progress allow stepping backward so "go back"
// navigation never loses data.
func IsValidGameStatusTransition(from, to GameStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusSetup:
		return to == StatusConfiguring
	case StatusConfiguring:
		return to == StatusAssigning || to == StatusSetup || to == StatusInProgress
	case StatusAssigning:
		return to == StatusInProgress || to == StatusConfiguring
	case StatusInProgress:
		return to == StatusFinished || to == StatusAssigning
	case StatusFinished:
		return to == StatusSetup
	default:
		return false
	}
}
