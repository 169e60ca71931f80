package sim

import "github.com/yohamta/donburi"

// Tags classifying the entities of a Level.
var (
	Floor     = donburi.NewTag().SetName("Floor")
	ActorTag  = donburi.NewTag().SetName("Actor")
	Stone     = donburi.NewTag().SetName("Stone")
	HitboxTag = donburi.NewTag().SetName("Hitbox")
)

// ActorData links an entity to its controller.
type ActorData struct {
	*Actor
}

// ProjectileData links an entity to its projectile.
type ProjectileData struct {
	*Projectile
}

// OwnerData points a hitbox back at the entity that owns it.
type OwnerData struct {
	Owner donburi.Entity
}

// NameData is the lookup name used for hit dispatch.
type NameData struct {
	Name string
}

var (
	ActorComp      = donburi.NewComponentType[ActorData]()
	ProjectileComp = donburi.NewComponentType[ProjectileData]()
	ShapeComp      = donburi.NewComponentType[Shape]()
	OwnerComp      = donburi.NewComponentType[OwnerData]()
	NameComp       = donburi.NewComponentType[NameData]()
)
