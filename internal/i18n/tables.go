package i18n

var spanish = Table{
	// Header
	"appTitle":    "PropPilot",
	"appSubtitle": "Gestión de Propiedades de Alquiler",

	// Tabs
	"dashboard":       "PANEL",
	"propertyUnits":   "UNIDADES DE PROPIEDAD",
	"tenants":         "INQUILINOS",
	"registerPayment": "REGISTRAR PAGO",

	// Property list
	"propertyUnitsTitle": "Unidades de Propiedad",
	"addProperty":        "AGREGAR PROPIEDAD",
	"searchPlaceholder":  "Buscar por dirección...",
	"noResults":          "No se encontraron propiedades",

	// Table headers
	"id":           "ID",
	"address":      "Dirección",
	"type":         "Tipo",
	"baseRent":     "Alquiler Base",
	"leaseStart":   "Inicio Contrato",
	"tenant":       "Inquilino",
	"noTenant":     "Sin Inquilino",
	"actions":      "Acciones",
	"notAvailable": "N/D",

	// Property types
	"apartment": "Departamento",
	"house":     "Casa",
	"duplex":    "Duplex",
	"ph":        "PH (Propiedad Horizontal)",
	"studio":    "Estudio",
	"loft":      "Loft",
	"townhouse": "Casa Adosada",

	// Add property dialog
	"addNewProperty":               "Agregar Nueva Propiedad",
	"addressLabel":                 "Dirección",
	"addressPlaceholder":           "Ej: Av. Colón 1234, Nueva Córdoba",
	"addressHelper":                "Dirección completa de la propiedad",
	"propertyTypeLabel":            "Tipo de Propiedad",
	"selectPropertyType":           "Seleccionar tipo de propiedad",
	"baseRentLabel":                "Alquiler Base",
	"baseRentPlaceholder":          "Ej: 85000",
	"baseRentHelper":               "Monto mensual",
	"leaseStartLabel":              "Fecha de Inicio del Contrato",
	"leaseStartHelper":             "Fecha de inicio del contrato de alquiler",
	"deleteProperty":               "Eliminar Propiedad",
	"confirmDeletePropertyMessage": "¿Está seguro de que desea eliminar la propiedad en {address}?",

	// Dialog actions
	"cancel":            "CANCELAR",
	"addPropertyAction": "AGREGAR PROPIEDAD",
	"save":              "GUARDAR",
	"delete":            "ELIMINAR",
	"edit":              "EDITAR",

	// Messages
	"totalUnits":             "Total: {count} unidad{plural} de propiedad",
	"loading":                "Cargando...",
	"errorOccurred":          "Ocurrió un error",
	"propertyCreatedSuccess": "¡Propiedad agregada exitosamente!",
	"propertyDeletedSuccess": "¡Propiedad eliminada exitosamente!",
	"failedToCreateProperty": "No se pudo agregar la propiedad",
	"failedToDeleteProperty": "No se pudo eliminar la propiedad",
	"failedToLoadProperties": "No se pudieron cargar las propiedades",
	"fixValidationErrors":    "Por favor corrija los errores indicados abajo",

	"pluralSuffix": Table{
		"units":   "es",
		"tenants": "s",
	},

	// Tenants
	"tenantsTitle":          "Inquilinos",
	"addTenant":             "AGREGAR INQUILINO",
	"addNewTenant":          "Agregar Nuevo Inquilino",
	"editTenantTitle":       "Editar Inquilino",
	"fullName":              "Nombre Completo",
	"nationalId":            "DNI/CUIT",
	"email":                 "Email",
	"phone":                 "Teléfono",
	"fullNameLabel":         "Nombre Completo",
	"fullNamePlaceholder":   "Ej: Juan Pérez",
	"nationalIdLabel":       "DNI/CUIT",
	"nationalIdPlaceholder": "Ej: 20-12345678-9",
	"emailLabel":            "Email",
	"emailPlaceholder":      "Ej: juan@ejemplo.com",
	"phoneLabel":            "Teléfono",
	"phonePlaceholder":      "Ej: +54 351 123-4567",
	"confirmDelete":         "Confirmar Eliminación",
	"confirmDeleteMessage":  "¿Está seguro de que desea eliminar a {name}?",
	"totalTenants":          "Total: {count} inquilino{plural}",
	"tenantCreatedSuccess":  "¡Inquilino creado exitosamente!",
	"tenantUpdatedSuccess":  "¡Inquilino actualizado exitosamente!",
	"tenantDeletedSuccess":  "¡Inquilino eliminado exitosamente!",
	"failedToCreateTenant":  "No se pudo crear el inquilino",
	"failedToUpdateTenant":  "No se pudo actualizar el inquilino",
	"failedToDeleteTenant":  "No se pudo eliminar el inquilino",
	"failedToLoadTenants":   "No se pudieron cargar los inquilinos",
	"duplicateNationalId":   "Ya existe un inquilino con ese DNI/CUIT",
	"duplicateEmail":        "Ya existe un inquilino con ese email",

	// Payment form
	"paymentFormTitle":        "Registrar Pago",
	"propertyUnitLabel":       "Unidad de Propiedad",
	"selectPropertyUnit":      "Seleccionar unidad de propiedad",
	"amountLabel":             "Monto",
	"amountPlaceholder":       "Ej: 85000",
	"paymentDateLabel":        "Fecha de Pago",
	"paymentTypeLabel":        "Tipo de Pago",
	"descriptionLabel":        "Descripción",
	"descriptionPlaceholder":  "Notas opcionales sobre el pago",
	"descriptionHelper":       "{count}/500 caracteres",
	"submitPayment":           "REGISTRAR PAGO",
	"clearForm":               "LIMPIAR",
	"submitting":              "Enviando...",
	"paymentSuccess":          "¡Pago registrado exitosamente!",
	"paymentFailed":           "No se pudo registrar el pago",
	"selectedPropertyDetails": "Detalles de la Propiedad Seleccionada",

	"paymentTypes": Table{
		"RENT":        "Pago de Alquiler",
		"DEPOSIT":     "Depósito de Garantía",
		"MAINTENANCE": "Expensas de Mantenimiento",
		"UTILITY":     "Pago de Servicios",
		"OTHER":       "Otro",
	},

	"validation": Table{
		"propertyUnitRequired": "La unidad de propiedad es requerida",
		"propertyUnitInvalid":  "La unidad de propiedad no es válida",
		"amountRequired":       "El monto del pago es requerido",
		"amountPositive":       "El monto del pago debe ser mayor a 0",
		"amountMax":            "El monto del pago no puede superar 999.999,99",
		"amountPrecision":      "El monto admite como máximo dos decimales",
		"paymentDateRequired":  "La fecha de pago es requerida",
		"paymentDateFuture":    "La fecha de pago no puede ser futura",
		"paymentTypeInvalid":   "El tipo de pago no es válido",
		"descriptionTooLong":   "La descripción no puede superar los 500 caracteres",
		"fullNameRequired":     "El nombre completo es requerido",
		"nationalIdRequired":   "El DNI/CUIT es requerido",
		"emailRequired":        "El email es requerido",
		"emailInvalid":         "El formato del email no es válido",
		"phoneRequired":        "El teléfono es requerido",
		"addressRequired":      "La dirección es requerida",
		"propertyTypeRequired": "El tipo de propiedad es requerido",
		"propertyTypeInvalid":  "El tipo de propiedad no es válido",
		"baseRentRequired":     "El alquiler base es requerido",
		"baseRentPositive":     "El alquiler base debe ser mayor a 0",
		"leaseStartRequired":   "La fecha de inicio es requerida",
		"leaseStartFuture":     "La fecha de inicio no puede ser futura",
	},

	// Dashboard
	"dashboardTitle":   "Panel General",
	"totalProperties":  "Propiedades Totales",
	"occupiedUnits":    "Unidades Ocupadas",
	"vacantUnits":      "Unidades Vacantes",
	"activeTenants":    "Inquilinos Activos",
	"monthlyRevenue":   "Ingreso Mensual",
	"potentialRevenue": "Ingreso Potencial",
	"occupancyRate":    "Ocupación: {rate}%",
	"unitsByType":      "Unidades por Tipo",
	"quickActions":     "Acciones Rápidas",

	// Locale selector
	"languageLabel": "Idioma",
	"currencyLabel": "Moneda",
	"languageName": Table{
		"es": "Español",
		"en": "English",
	},

	// Currencies
	"currencySymbol": Table{
		"ARS": "$",
		"USD": "US$",
	},
	"currencyName": Table{
		"ARS": "Pesos Argentinos",
		"USD": "Dólares Estadounidenses",
	},
}

var english = Table{
	// Header
	"appTitle":    "PropPilot",
	"appSubtitle": "Rental Property Management",

	// Tabs
	"dashboard":       "DASHBOARD",
	"propertyUnits":   "PROPERTY UNITS",
	"tenants":         "TENANTS",
	"registerPayment": "REGISTER PAYMENT",

	// Property list
	"propertyUnitsTitle": "Property Units",
	"addProperty":        "ADD PROPERTY",
	"searchPlaceholder":  "Search by address...",
	"noResults":          "No properties found",

	// Table headers
	"id":           "ID",
	"address":      "Address",
	"type":         "Type",
	"baseRent":     "Base Rent",
	"leaseStart":   "Lease Start",
	"tenant":       "Tenant",
	"noTenant":     "No Tenant",
	"actions":      "Actions",
	"notAvailable": "N/A",

	// Property types
	"apartment": "Apartment",
	"house":     "House",
	"duplex":    "Duplex",
	"ph":        "Townhouse",
	"studio":    "Studio",
	"loft":      "Loft",
	"townhouse": "Townhouse",

	// Add property dialog
	"addNewProperty":               "Add New Property",
	"addressLabel":                 "Address",
	"addressPlaceholder":           "Ex: 123 Main Street, Downtown",
	"addressHelper":                "Complete property address",
	"propertyTypeLabel":            "Property Type",
	"selectPropertyType":           "Select property type",
	"baseRentLabel":                "Base Rent",
	"baseRentPlaceholder":          "Ex: 1500",
	"baseRentHelper":               "Monthly amount",
	"leaseStartLabel":              "Lease Start Date",
	"leaseStartHelper":             "Lease contract start date",
	"deleteProperty":               "Delete Property",
	"confirmDeletePropertyMessage": "Are you sure you want to delete the property at {address}?",

	// Dialog actions
	"cancel":            "CANCEL",
	"addPropertyAction": "ADD PROPERTY",
	"save":              "SAVE",
	"delete":            "DELETE",
	"edit":              "EDIT",

	// Messages
	"totalUnits":             "Total: {count} property unit{plural}",
	"loading":                "Loading...",
	"errorOccurred":          "An error occurred",
	"propertyCreatedSuccess": "Property added successfully!",
	"propertyDeletedSuccess": "Property deleted successfully!",
	"failedToCreateProperty": "Failed to add property",
	"failedToDeleteProperty": "Failed to delete property",
	"failedToLoadProperties": "Failed to load property units",
	"fixValidationErrors":    "Please fix the validation errors below",

	"pluralSuffix": Table{
		"units":   "s",
		"tenants": "s",
	},

	// Tenants
	"tenantsTitle":          "Tenants",
	"addTenant":             "ADD TENANT",
	"addNewTenant":          "Add New Tenant",
	"editTenantTitle":       "Edit Tenant",
	"fullName":              "Full Name",
	"nationalId":            "National ID",
	"email":                 "Email",
	"phone":                 "Phone",
	"fullNameLabel":         "Full Name",
	"fullNamePlaceholder":   "Ex: John Smith",
	"nationalIdLabel":       "National ID",
	"nationalIdPlaceholder": "Ex: 20-12345678-9",
	"emailLabel":            "Email",
	"emailPlaceholder":      "Ex: john@example.com",
	"phoneLabel":            "Phone",
	"phonePlaceholder":      "Ex: +1 555 123-4567",
	"confirmDelete":         "Confirm Delete",
	"confirmDeleteMessage":  "Are you sure you want to delete {name}?",
	"totalTenants":          "Total: {count} tenant{plural}",
	"tenantCreatedSuccess":  "Tenant created successfully!",
	"tenantUpdatedSuccess":  "Tenant updated successfully!",
	"tenantDeletedSuccess":  "Tenant deleted successfully!",
	"failedToCreateTenant":  "Failed to create tenant",
	"failedToUpdateTenant":  "Failed to update tenant",
	"failedToDeleteTenant":  "Failed to delete tenant",
	"failedToLoadTenants":   "Failed to load tenants",
	"duplicateNationalId":   "A tenant with this national ID already exists",
	"duplicateEmail":        "A tenant with this email already exists",

	// Payment form
	"paymentFormTitle":        "Register Payment",
	"propertyUnitLabel":       "Property Unit",
	"selectPropertyUnit":      "Select a property unit",
	"amountLabel":             "Amount",
	"amountPlaceholder":       "Ex: 1500",
	"paymentDateLabel":        "Payment Date",
	"paymentTypeLabel":        "Payment Type",
	"descriptionLabel":        "Description",
	"descriptionPlaceholder":  "Optional notes about the payment",
	"descriptionHelper":       "{count}/500 characters",
	"submitPayment":           "REGISTER PAYMENT",
	"clearForm":               "CLEAR",
	"submitting":              "Submitting...",
	"paymentSuccess":          "Payment registered successfully!",
	"paymentFailed":           "Failed to register payment",
	"selectedPropertyDetails": "Selected Property Details",

	"paymentTypes": Table{
		"RENT":        "Rent Payment",
		"DEPOSIT":     "Security Deposit",
		"MAINTENANCE": "Maintenance Fee",
		"UTILITY":     "Utility Payment",
		"OTHER":       "Other",
	},

	"validation": Table{
		"propertyUnitRequired": "Property unit is required",
		"propertyUnitInvalid":  "Property unit is not valid",
		"amountRequired":       "Payment amount is required",
		"amountPositive":       "Payment amount must be greater than 0",
		"amountMax":            "Payment amount cannot exceed 999,999.99",
		"amountPrecision":      "Amount allows at most two decimal places",
		"paymentDateRequired":  "Payment date is required",
		"paymentDateFuture":    "Payment date cannot be in the future",
		"paymentTypeInvalid":   "Payment type is not valid",
		"descriptionTooLong":   "Description cannot exceed 500 characters",
		"fullNameRequired":     "Full name is required",
		"nationalIdRequired":   "National ID is required",
		"emailRequired":        "Email is required",
		"emailInvalid":         "Email format is not valid",
		"phoneRequired":        "Phone is required",
		"addressRequired":      "Address is required",
		"propertyTypeRequired": "Property type is required",
		"propertyTypeInvalid":  "Property type is not valid",
		"baseRentRequired":     "Base rent is required",
		"baseRentPositive":     "Base rent must be greater than 0",
		"leaseStartRequired":   "Lease start date is required",
		"leaseStartFuture":     "Lease start date cannot be in the future",
	},

	// Dashboard
	"dashboardTitle":   "Dashboard",
	"totalProperties":  "Total Properties",
	"occupiedUnits":    "Occupied Units",
	"vacantUnits":      "Vacant Units",
	"activeTenants":    "Active Tenants",
	"monthlyRevenue":   "Monthly Revenue",
	"potentialRevenue": "Potential Revenue",
	"occupancyRate":    "Occupancy: {rate}%",
	"unitsByType":      "Units by Type",
	"quickActions":     "Quick Actions",

	// Locale selector
	"languageLabel": "Language",
	"currencyLabel": "Currency",
	"languageName": Table{
		"es": "Español",
		"en": "English",
	},

	// Currencies
	"currencySymbol": Table{
		"ARS": "AR$",
		"USD": "$",
	},
	"currencyName": Table{
		"ARS": "Argentine Pesos",
		"USD": "US Dollars",
	},
}
