package schedule

import "strings"

// UnknownStudentLabel is the display fallback for a participant ID with no
// matching student: students may be deleted while historical sessions
// remain, so a dangling reference is never a hard error.
const UnknownStudentLabel = "Aluno Desconhecido"

const participantSep = ","

// EncodeParticipants joins student IDs into the storage-boundary string
// encoding, preserving order.
func EncodeParticipants(ids []string) string {
	return strings.Join(ids, participantSep)
}

// DecodeParticipants splits a stored participant reference into student
// IDs, trimming whitespace around each. An empty reference yields no IDs
// (an unknown participant, not a lookup candidate).
func DecodeParticipants(ref string) []string {
	if strings.TrimSpace(ref) == "" {
		return nil
	}
	parts := strings.Split(ref, participantSep)
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

// ResolveNames maps participant IDs through the student directory,
// substituting UnknownStudentLabel for any ID with no match.
func ResolveNames(ids []string, directory map[string]string) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		if name, ok := directory[id]; ok {
			names[i] = name
		} else {
			names[i] = UnknownStudentLabel
		}
	}
	return names
}
