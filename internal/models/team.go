package models

type TeamMember struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

var roster = []TeamMember{
	{Name: "Isabel", Role: "Analista", Email: "isabel.cruz@fgv.br"},
	{Name: "Douglas", Role: "Analista", Email: "Douglas@fgv.br"},
	{Name: "Guilherme", Role: "Desenvolvedor", Email: "guilherme@fgv.br"},
	{Name: "Leandro", Role: "Coordenador", Email: "leandro.vento@fgv.br"},
}

// assignees are the names offered when creating a task. They are not the
// roster: tasks and team stats meet only where names happen to match.
var assignees = []string{"Ana Silva", "Bruno Santos", "Carla Oliveira", "Daniel Costa"}

// Roster returns a copy of the fixed team. Tasks reference members by name only.
func Roster() []TeamMember {
	out := make([]TeamMember, len(roster))
	copy(out, roster)
	return out
}

func Assignees() []string {
	out := make([]string, len(assignees))
	copy(out, assignees)
	return out
}
