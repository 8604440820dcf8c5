package sorting

// Organization sorts on the primary organization name.
var Organization = NewRegistry(
	Option{Key: "name-asc", Label: "Name (A-Z)", BackendValue: "organizationtoname__name"},
	Option{Key: "name-desc", Label: "Name (Z-A)", BackendValue: "-organizationtoname__name"},
)

// Practitioner sorts on the individual's last name.
var Practitioner = NewRegistry(
	Option{Key: "name-asc", Label: "Last name (A-Z)", BackendValue: "individual__individualtoname__last_name"},
	Option{Key: "name-desc", Label: "Last name (Z-A)", BackendValue: "-individual__individualtoname__last_name"},
)
