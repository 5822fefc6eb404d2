/*
Package migration tracks the schema version of each package and upgrades
messages and models stored in an older format.

A package is initialized with schema version 1, either from the genesis
"initialize_schema" list or by calling InitPkg. The migration admin can
later bump the version with UpgradeSchemaMsg, one version at a time. An
upgrade of a package that was never initialized is refused.

To make a package schema aware:

	func init() {
		migration.MustRegister(1, &MyModel{}, migration.NoModification)
		migration.MustRegister(1, &MyMsg{}, migration.NoModification)
	}

Versions are declared per package, so every upgrade must register a
migrator for every entity of that package. Wrap the buckets with
NewModelBucket and the registry with SchemaMigratingRegistry, so that
handlers only ever see entities in the current format.
*/
package migration
