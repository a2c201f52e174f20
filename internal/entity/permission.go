package entity

import "fmt"

type Module string

const (
	ModuleDashboard       Module = "dashboard"
	ModuleEquipment       Module = "equipment"
	ModuleEmployees       Module = "employees"
	ModuleUsers           Module = "users"
	ModuleTickets         Module = "tickets"
	ModuleEquipmentTypes  Module = "equipmentTypes"
	ModuleServiceStations Module = "serviceStations"
	ModuleAIAssistant     Module = "aiAssistant"
	ModuleAdminPanel      Module = "canAccessAdminPanel"
)

type Action string

const (
	// ActionAny asks whether any action of a module is granted.
	ActionAny          Action = ""
	ActionRead         Action = "read"
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionViewInternal Action = "viewInternal"
	ActionAddComments  Action = "addComments"
)

// Modules lists the navigable modules in menu order.
func Modules() []Module {
	return []Module{
		ModuleDashboard,
		ModuleEquipment,
		ModuleEmployees,
		ModuleUsers,
		ModuleTickets,
		ModuleEquipmentTypes,
		ModuleServiceStations,
		ModuleAIAssistant,
	}
}

func ParseModule(s string) (Module, error) {
	m := Module(s)
	if m == ModuleAdminPanel {
		return m, nil
	}

	for _, known := range Modules() {
		if m == known {
			return m, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownModule, s)
}

func ParseAction(s string) (Action, error) {
	a := Action(s)

	switch a {
	case ActionAny, ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionViewInternal, ActionAddComments:
		return a, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

type ReadPermissions struct {
	Read bool `json:"read"`
}

type CRUDPermissions struct {
	Read   bool `json:"read"`
	Create bool `json:"create"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

type TicketPermissions struct {
	CRUDPermissions
	ViewInternal bool `json:"viewInternal"`
	AddComments  bool `json:"addComments"`
}

// PermissionMatrix is the full module x action grant set of a role.
// It is a value: build a new one with BuildMatrix instead of editing fields.
type PermissionMatrix struct {
	Dashboard           ReadPermissions   `json:"dashboard"`
	Equipment           CRUDPermissions   `json:"equipment"`
	Employees           CRUDPermissions   `json:"employees"`
	Users               CRUDPermissions   `json:"users"`
	Tickets             TicketPermissions `json:"tickets"`
	EquipmentTypes      CRUDPermissions   `json:"equipmentTypes"`
	ServiceStations     CRUDPermissions   `json:"serviceStations"`
	AIAssistant         ReadPermissions   `json:"aiAssistant"`
	CanAccessAdminPanel bool              `json:"canAccessAdminPanel"`
}

var (
	allCRUD  = CRUDPermissions{Read: true, Create: true, Update: true, Delete: true}
	noDelete = CRUDPermissions{Read: true, Create: true, Update: true}
	readOnly = CRUDPermissions{Read: true}
	noAccess = CRUDPermissions{}
)

// BuildMatrix derives the permission matrix of a role. Roles other than admin
// and manager get the user matrix.
func BuildMatrix(role Role) PermissionMatrix {
	switch role {
	case RoleAdmin:
		return PermissionMatrix{
			Dashboard:           ReadPermissions{Read: true},
			Equipment:           allCRUD,
			Employees:           allCRUD,
			Users:               allCRUD,
			Tickets:             TicketPermissions{CRUDPermissions: allCRUD, ViewInternal: true, AddComments: true},
			EquipmentTypes:      allCRUD,
			ServiceStations:     allCRUD,
			AIAssistant:         ReadPermissions{Read: true},
			CanAccessAdminPanel: true,
		}
	case RoleManager:
		return PermissionMatrix{
			Dashboard:       ReadPermissions{Read: true},
			Equipment:       noDelete,
			Employees:       noDelete,
			Users:           readOnly,
			Tickets:         TicketPermissions{CRUDPermissions: noDelete, ViewInternal: true, AddComments: true},
			EquipmentTypes:  noDelete,
			ServiceStations: noDelete,
			AIAssistant:     ReadPermissions{Read: true},
		}
	default:
		return PermissionMatrix{
			Dashboard: ReadPermissions{Read: true},
			Equipment: noAccess,
			Employees: noAccess,
			Users:     noAccess,
			Tickets: TicketPermissions{
				CRUDPermissions: CRUDPermissions{Read: true, Create: true},
				AddComments:     true,
			},
			EquipmentTypes:  noAccess,
			ServiceStations: noAccess,
			AIAssistant:     ReadPermissions{Read: true},
		}
	}
}

// HasPermission reports the exact grant for module/action. With ActionAny it
// reports whether any action of the module is granted. Unknown pairs are denied.
func (m PermissionMatrix) HasPermission(module Module, action Action) bool {
	if module == ModuleAdminPanel {
		return action == ActionAny && m.CanAccessAdminPanel
	}

	grants, ok := m.grants(module)
	if !ok {
		return false
	}

	if action == ActionAny {
		for _, allowed := range grants {
			if allowed {
				return true
			}
		}

		return false
	}

	return grants[action]
}

// CanAccessModule gates navigation and whole-page access on the module read flag.
func (m PermissionMatrix) CanAccessModule(module Module) bool {
	grants, ok := m.grants(module)
	if !ok {
		return m.HasPermission(module, ActionAny)
	}

	return grants[ActionRead]
}

// AccessibleModules returns the modules visible in navigation.
func (m PermissionMatrix) AccessibleModules() []Module {
	modules := make([]Module, 0, len(Modules()))

	for _, module := range Modules() {
		if m.CanAccessModule(module) {
			modules = append(modules, module)
		}
	}

	return modules
}

func (m PermissionMatrix) grants(module Module) (map[Action]bool, bool) {
	switch module {
	case ModuleDashboard:
		return m.Dashboard.grants(), true
	case ModuleEquipment:
		return m.Equipment.grants(), true
	case ModuleEmployees:
		return m.Employees.grants(), true
	case ModuleUsers:
		return m.Users.grants(), true
	case ModuleTickets:
		return m.Tickets.grants(), true
	case ModuleEquipmentTypes:
		return m.EquipmentTypes.grants(), true
	case ModuleServiceStations:
		return m.ServiceStations.grants(), true
	case ModuleAIAssistant:
		return m.AIAssistant.grants(), true
	}

	return nil, false
}

func (p ReadPermissions) grants() map[Action]bool {
	return map[Action]bool{ActionRead: p.Read}
}

func (p CRUDPermissions) grants() map[Action]bool {
	return map[Action]bool{
		ActionRead:   p.Read,
		ActionCreate: p.Create,
		ActionUpdate: p.Update,
		ActionDelete: p.Delete,
	}
}

func (p TicketPermissions) grants() map[Action]bool {
	g := p.CRUDPermissions.grants()
	g[ActionViewInternal] = p.ViewInternal
	g[ActionAddComments] = p.AddComments

	return g
}
