package anim

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/blockout/internal/world"
)

// Palette colours a character.
type Palette struct {
	Skin  color.RGBA
	Shirt color.RGBA
	Pants color.RGBA
}

// Character palettes
var (
	PlayerPalette = Palette{
		Skin:  color.RGBA{240, 220, 190, 255},
		Shirt: color.RGBA{50, 60, 180, 255},
		Pants: color.RGBA{70, 80, 90, 255},
	}
	EnemyPalette = Palette{
		Skin:  color.RGBA{200, 180, 150, 255},
		Shirt: color.RGBA{180, 60, 50, 255},
		Pants: color.RGBA{90, 80, 70, 255},
	}

	weaponColor  = color.RGBA{40, 40, 40, 255}
	weaponDetail = color.RGBA{60, 60, 60, 255}
)

// PartName identifies a rig part.
type PartName int

const (
	Torso PartName = iota
	Head
	LeftLeg
	RightLeg
	RightArm
	Weapon
	LeftArm
)

// Part is one box of the rig in world space.
type Part struct {
	Name  PartName
	Model mgl64.Mat4 // Transform of the box centre
	Size  mgl64.Vec3
	Color color.RGBA
}

// Center returns the world position of the part's centre.
func (p Part) Center() mgl64.Vec3 {
	return mgl64.TransformCoordinate(mgl64.Vec3{}, p.Model)
}

func translate(x, y, z float64) mgl64.Mat4 {
	return mgl64.Translate3D(x, y, z)
}

func rotX(deg float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(mgl64.DegToRad(deg))
}

func rotY(deg float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DY(mgl64.DegToRad(deg))
}

func rotZ(deg float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DZ(mgl64.DegToRad(deg))
}

// Rig lays out the character boxes for a pose. position is the body centre
// and facing the yaw in degrees. The weapon hangs off the right arm unless
// the character is Dying or talking.
func Rig(position mgl64.Vec3, facing float64, pose Pose, in Input, palette Palette) []Part {
	parts := make([]Part, 0, 10)
	add := func(name PartName, parent mgl64.Mat4, offset, size mgl64.Vec3, clr color.RGBA) {
		parts = append(parts, Part{
			Name:  name,
			Model: parent.Mul4(translate(offset.X(), offset.Y(), offset.Z())),
			Size:  size,
			Color: clr,
		})
	}

	root := translate(position.X(), position.Y(), position.Z()).
		Mul4(rotY(facing)).
		Mul4(rotX(pose.BodyPitch))
	lift := pose.TorsoLift

	// Torso and head
	torso := root.Mul4(translate(0, lift, 0)).Mul4(rotX(pose.TorsoPitch))
	add(Torso, torso, mgl64.Vec3{0, 0.4, 0}, mgl64.Vec3{0.7, 0.8, 0.4}, palette.Shirt)
	add(Head, torso.Mul4(rotX(pose.HeadPitch)), mgl64.Vec3{0, 1.05, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, palette.Skin)

	// Legs
	legSize := mgl64.Vec3{0.3, 1.0, 0.3}
	leftLeg := root.Mul4(translate(-0.18, -0.1+lift, 0)).Mul4(rotX(pose.LeftLeg))
	add(LeftLeg, leftLeg, mgl64.Vec3{0, -0.5, 0}, legSize, palette.Pants)
	rightLeg := root.Mul4(translate(0.18, -0.1+lift, 0)).Mul4(rotX(pose.RightLeg))
	add(RightLeg, rightLeg, mgl64.Vec3{0, -0.5, 0}, legSize, palette.Pants)

	// Right arm and weapon
	armSize := mgl64.Vec3{0.2, 0.7, 0.2}
	rightArm := root.Mul4(translate(0.3, 0.75+lift, 0.05)).
		Mul4(rotX(pose.TorsoPitch)).
		Mul4(rotZ(pose.RightArmRoll)).
		Mul4(rotX(pose.RightArmPitch))
	add(RightArm, rightArm, mgl64.Vec3{0, -0.35, 0}, armSize, palette.Shirt)

	if ShowsWeapon(in) {
		gun := rightArm.Mul4(translate(0, -0.4, 0.25)).Mul4(rotY(90))
		if in.Aiming {
			gun = gun.Mul4(translate(0.2, 0.1, -0.15))
		}
		add(Weapon, gun, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.8, 0.16, 0.13}, weaponColor)
		add(Weapon, gun, mgl64.Vec3{-0.15, -0.12, 0}, mgl64.Vec3{0.18, 0.25, 0.1}, weaponDetail)
		add(Weapon, gun, mgl64.Vec3{0.55, 0.04, 0}, mgl64.Vec3{0.5, 0.04, 0.04}, weaponDetail)
		add(Weapon, gun, mgl64.Vec3{-0.6, 0, 0}, mgl64.Vec3{0.4, 0.08, 0.1}, weaponColor)
	}

	// Left arm
	leftArm := root.Mul4(translate(-0.3, 0.75+lift, 0.2)).
		Mul4(rotX(pose.TorsoPitch)).
		Mul4(rotZ(pose.LeftArmRoll)).
		Mul4(rotX(pose.LeftArmPitch))
	add(LeftArm, leftArm, mgl64.Vec3{0, -0.35, 0}, armSize, palette.Shirt)

	return parts
}

// ShowsWeapon reports whether the rig carries the rifle.
func ShowsWeapon(in Input) bool {
	return in.State != world.Dying && !in.Talking
}
