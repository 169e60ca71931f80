package sim

// Physics holds the world constants applied to every actor.
type Physics struct {
	Gravity float64 // subtracted from Velocity.Y every tick
	MaxFall float64 // terminal downward speed
}

// ActorKind is the immutable description shared by all actors of one type.
type ActorKind struct {
	Name  string
	Melee bool // melee actors attack a target in their proximity band

	MaxSpeed    float64
	HitBonus    float64
	JumpImpulse float64
	Health      int
	WalkTimeMax int // patrol length in ticks; <= 0 never turns around
	IdleLoop    int // FrameCounter wraps to 0 once it exceeds this

	AggroBand     float64 // horizontal reach of the proximity check
	VerticalReach float64 // vertical reach of the proximity check

	HalfW, HalfH float64
	HitboxScale  float64

	Animations AnimationTable
}

// StoneKind describes a thrown projectile.
type StoneKind struct {
	Name     string
	Speed    float64
	Lifetime int

	// Hitbox offset from the projectile position, Forward along the facing.
	Forward float64
	Lift    float64
	Radius  float64

	Animations AnimationTable
}
