package permissions

import "sync"

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. A broken built-in definition panics on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = MustCatalog(coreCategories()...)
	})
	return defaultCatalog
}

func coreCategories() []Category {
	return []Category{
		{
			ID:   "contacts",
			Name: "Contacts",
			Permissions: []Permission{
				{Key: "contacts.view", Name: "View contacts", Description: "Browse and search contacts"},
				{Key: "contacts.create", Name: "Create contacts", DependsOn: []string{"contacts.view"}},
				{Key: "contacts.edit", Name: "Edit contacts", DependsOn: []string{"contacts.view"}},
				{Key: "contacts.delete", Name: "Delete contacts", DependsOn: []string{"contacts.view", "contacts.edit"}},
				{Key: "contacts.import", Name: "Import contacts", Description: "Bulk import from CSV", DependsOn: []string{"contacts.create"}},
				{Key: "contacts.export", Name: "Export contacts", DependsOn: []string{"contacts.view"}},
			},
		},
		{
			ID:   "companies",
			Name: "Companies",
			Permissions: []Permission{
				{Key: "companies.view", Name: "View companies"},
				{Key: "companies.create", Name: "Create companies", DependsOn: []string{"companies.view"}},
				{Key: "companies.edit", Name: "Edit companies", DependsOn: []string{"companies.view"}},
				{Key: "companies.delete", Name: "Delete companies", DependsOn: []string{"companies.edit"}},
			},
		},
		{
			ID:   "deals",
			Name: "Deals",
			Permissions: []Permission{
				{Key: "deals.view", Name: "View deals", DependsOn: []string{"contacts.view", "companies.view"}},
				{Key: "deals.create", Name: "Create deals", DependsOn: []string{"deals.view"}},
				{Key: "deals.edit", Name: "Edit deals", DependsOn: []string{"deals.view"}},
				{Key: "deals.delete", Name: "Delete deals", DependsOn: []string{"deals.edit"}},
			},
		},
		{
			ID:   "spaces",
			Name: "Spaces",
			Permissions: []Permission{
				{Key: "spaces.view", Name: "View spaces", Description: "Browse spaces, folders and lists"},
				{Key: "spaces.create", Name: "Create spaces", DependsOn: []string{"spaces.view"}},
				{Key: "spaces.edit", Name: "Edit spaces", DependsOn: []string{"spaces.view"}},
				{Key: "spaces.delete", Name: "Delete spaces", DependsOn: []string{"spaces.edit"}},
				{Key: "spaces.manage_members", Name: "Manage space members", DependsOn: []string{"spaces.edit", "members.view"}},
			},
		},
		{
			ID:   "tasks",
			Name: "Tasks",
			Permissions: []Permission{
				{Key: "tasks.view", Name: "View tasks", DependsOn: []string{"spaces.view"}},
				{Key: "tasks.create", Name: "Create tasks", DependsOn: []string{"tasks.view"}},
				{Key: "tasks.edit_own", Name: "Edit own tasks", DependsOn: []string{"tasks.view"}},
				{Key: "tasks.edit_any", Name: "Edit any task", DependsOn: []string{"tasks.edit_own"}},
				{Key: "tasks.assign", Name: "Assign tasks", DependsOn: []string{"tasks.edit_own", "members.view"}},
				{Key: "tasks.delete", Name: "Delete tasks", DependsOn: []string{"tasks.edit_any"}},
			},
		},
		{
			ID:   "messages",
			Name: "Messages",
			Permissions: []Permission{
				{Key: "messages.view", Name: "View messages"},
				{Key: "messages.send", Name: "Send direct messages", DependsOn: []string{"messages.view", "members.view"}},
				{Key: "messages.broadcast", Name: "Broadcast announcements", DependsOn: []string{"messages.send"}},
			},
		},
		{
			ID:   "reports",
			Name: "Reports",
			Permissions: []Permission{
				{Key: "reports.view", Name: "View reports"},
				{Key: "reports.export", Name: "Export reports", DependsOn: []string{"reports.view"}},
			},
		},
		{
			ID:   "members",
			Name: "Members",
			Permissions: []Permission{
				{Key: "members.view", Name: "View members", Description: "Browse the member directory"},
				{Key: "members.invite", Name: "Invite members", DependsOn: []string{"members.view"}},
				{Key: "members.edit", Name: "Edit members", DependsOn: []string{"members.view"}},
				{Key: "members.remove", Name: "Remove members", DependsOn: []string{"members.edit"}},
			},
		},
		{
			ID:   "roles",
			Name: "Roles",
			Permissions: []Permission{
				{Key: "roles.view", Name: "View roles"},
				{Key: "roles.manage", Name: "Manage roles", Description: "Create roles and edit their permissions", DependsOn: []string{"roles.view", "members.view"}},
				{Key: "roles.assign", Name: "Assign roles", DependsOn: []string{"roles.view", "members.edit"}},
			},
		},
		{
			ID:   "settings",
			Name: "Settings",
			Permissions: []Permission{
				{Key: "settings.view", Name: "View settings"},
				{Key: "settings.manage", Name: "Manage settings", DependsOn: []string{"settings.view"}},
			},
		},
	}
}
